package ring

import "testing"

func TestBitTruthTable(t *testing.T) {
	zero, one := GF2.Create(0), GF2.Create(1)
	cases := []struct {
		name string
		a, b Element
		add  int64
		mul  int64
	}{
		{"0,0", zero, zero, 0, 0},
		{"0,1", zero, one, 1, 0},
		{"1,0", one, zero, 1, 0},
		{"1,1", one, one, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Add(c.b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != c.add {
				t.Errorf("Add = %d, want %d", got, c.add)
			}
			if got := c.a.Mul(c.b).(IntegerRepresentable).IntegerRepresentation().Int64(); got != c.mul {
				t.Errorf("Mul = %d, want %d", got, c.mul)
			}
		})
	}
}
