package ring

import "testing"

func TestModArithmetic(t *testing.T) {
	m := MustNewMod(13)
	a := m.Create(10)
	b := m.Create(7)
	if got := a.Add(b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != 4 {
		t.Errorf("10+7 mod 13 = %d, want 4", got)
	}
	if got := a.Sub(b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != 3 {
		t.Errorf("10-7 mod 13 = %d, want 3", got)
	}
}

func TestModDivIsMultiplicativeInverse(t *testing.T) {
	m := MustNewMod(13)
	a := m.Create(10)
	b := m.Create(7)
	quotient := a.Div(b)
	if got := quotient.Mul(b); !got.Equal(a) {
		t.Errorf("(a/b)*b = %s, want %s", got, a)
	}
}

func TestModRejectsNonPositiveModulus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive modulus")
		}
	}()
	MustNewMod(0)
}

func TestModCrossRingPanics(t *testing.T) {
	a := MustNewMod(13).Create(1)
	b := MustNewMod(17).Create(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic mixing elements from different moduli")
		}
	}()
	a.Add(b)
}
