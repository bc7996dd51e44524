package columntype

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		tag      string
		expected Category
	}{
		{"boolean", Boolean},
		{"java.lang.Boolean", Boolean},
		{"char", Char},
		{"java.lang.Character", Char},
		{"java.lang.String", String},
		{"java.time.Instant", DateTime},
		{"java.time.ZonedDateTime", DateTime},
		{"io.deephaven.time.DateTime", DateTime},
		{"double", Decimal},
		{"java.lang.Float", Decimal},
		{"java.math.BigDecimal", Decimal},
		{"int", Integer},
		{"long", Integer},
		{"java.lang.Short", Integer},
		{"byte", Integer},
		{"java.math.BigInteger", Integer},
		{"decimal", Decimal},
		{"unknown", Unknown},
		{"", Unknown},
		{"java.util.UUID", Unknown},
		{"int[]", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := Classify(tt.tag); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	if !Integer.IsNumeric() || !Decimal.IsNumeric() {
		t.Error("expected Integer and Decimal to be numeric")
	}
	if String.IsNumeric() || Boolean.IsNumeric() {
		t.Error("expected String and Boolean not to be numeric")
	}
	if !String.IsText() || !Char.IsText() {
		t.Error("expected String and Char to be text")
	}
	if Unknown.IsText() {
		t.Error("expected Unknown not to be text")
	}
}

func TestBaseType(t *testing.T) {
	if got := BaseType("int[]"); got != "int" {
		t.Errorf("expected 'int', got '%s'", got)
	}
	if got := BaseType("java.lang.String"); got != "java.lang.String" {
		t.Errorf("expected 'java.lang.String', got '%s'", got)
	}
	if got := Classify(BaseType("double[]")); got != Decimal {
		t.Errorf("expected decimal, got %s", got)
	}
}

func TestWideTypes(t *testing.T) {
	if !IsLong("long") || !IsLong("java.lang.Long") || IsLong("int") {
		t.Error("unexpected IsLong result")
	}
	if !IsBigDecimal("java.math.BigDecimal") || IsBigDecimal("double") {
		t.Error("unexpected IsBigDecimal result")
	}
	if !IsBigInteger("java.math.BigInteger") || IsBigInteger("long") {
		t.Error("unexpected IsBigInteger result")
	}
	if !IsCompatible("int", "java.lang.Long") || IsCompatible("int", "double") {
		t.Error("unexpected IsCompatible result")
	}
}
