package ring

import "testing"

func TestWordWraparound(t *testing.T) {
	w, err := NewWord(8)
	if err != nil {
		t.Fatal(err)
	}
	a := w.Create(250)
	b := w.Create(10)
	sum := a.Add(b)
	if sum.(IntegerRepresentable).IntegerRepresentation().Int64() != 4 {
		t.Fatalf("250+10 mod 256 = %s, want 4", sum)
	}
}

func TestWordRotate(t *testing.T) {
	w, err := NewWord(8)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name   string
		v      int64
		n      uint
		rol    int64
		ror    int64
	}{
		{"0x01", 0x01, 1, 0x02, 0x80},
		{"0x80", 0x80, 1, 0x01, 0x40},
		{"0xFF", 0xFF, 4, 0xFF, 0xFF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := w.Create(c.v).(BitwiseElement)
			if got := v.Rol(c.n).(IntegerRepresentable).IntegerRepresentation().Int64(); got != c.rol {
				t.Errorf("Rol(%d) = 0x%x, want 0x%x", c.n, got, c.rol)
			}
			if got := v.Ror(c.n).(IntegerRepresentable).IntegerRepresentation().Int64(); got != c.ror {
				t.Errorf("Ror(%d) = 0x%x, want 0x%x", c.n, got, c.ror)
			}
		})
	}
}

func TestWordDivByZeroPanics(t *testing.T) {
	w, _ := NewWord(8)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on division by zero")
		}
	}()
	w.Create(5).Div(w.Create(0))
}

func TestWordBitwiseOps(t *testing.T) {
	w, _ := NewWord(8)
	a := w.Create(0x0F).(BitwiseElement)
	b := w.Create(0xF0).(BitwiseElement)
	if got := a.Or(b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != 0xFF {
		t.Errorf("0x0F|0xF0 = 0x%x, want 0xFF", got)
	}
	if got := a.And(b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != 0 {
		t.Errorf("0x0F&0xF0 = 0x%x, want 0", got)
	}
	if got := a.Not().(IntegerRepresentable).IntegerRepresentation().Int64(); got != 0xF0 {
		t.Errorf("NOT 0x0F = 0x%x, want 0xF0", got)
	}
}
