package parser

import (
	"strings"
	"testing"

	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name      string
		sample    string
		fieldName string
		want      models.FieldType
	}{
		{"plain text", "Finca El Roble", "Nombre del predio", models.FieldTypeText},
		{"numeric sample", "120", "Área (ha)", models.FieldTypeNumber},
		{"numeric with decimals", "3.75", "Superficie", models.FieldTypeNumber},
		{"slash date sample", "15/03/2024", "Inicio", models.FieldTypeDate},
		{"iso date sample", "2024-03-15", "Inicio", models.FieldTypeDate},
		{"single digit slash date", "1/3/2024", "Inicio", models.FieldTypeDate},
		{"fecha in name beats numeric sample", "42", "Fecha de inicio", models.FieldTypeDate},
		{"date token in name", "", "Start date", models.FieldTypeDate},
		{"cantidad in name", "", "Cantidad de árboles", models.FieldTypeNumber},
		{"numero in name without sample", "", "Número de familias", models.FieldTypeNumber},
		{"observacion in name", "", "Observaciones generales", models.FieldTypeTextarea},
		{"comentario in name", "corto", "Comentarios", models.FieldTypeTextarea},
		{"long sample becomes textarea", strings.Repeat("a", 101), "Detalle", models.FieldTypeTextarea},
		{"sample at threshold stays text", strings.Repeat("a", 100), "Detalle", models.FieldTypeText},
		{"empty sample and plain name", "", "Vereda", models.FieldTypeText},
		{"name match is case insensitive", "", "FECHA DE CORTE", models.FieldTypeDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferType(tt.sample, tt.fieldName)
			if got != tt.want {
				t.Errorf("InferType(%q, %q) = %q, want %q", tt.sample, tt.fieldName, got, tt.want)
			}
		})
	}
}

func TestInferTypeLongRuneSample(t *testing.T) {
	// Length is counted in runes, not bytes: 60 two-byte runes stay text.
	sample := strings.Repeat("á", 60)
	if got := InferType(sample, "Detalle"); got != models.FieldTypeText {
		t.Errorf("60-rune sample should stay text, got %q", got)
	}
	sample = strings.Repeat("á", 101)
	if got := InferType(sample, "Detalle"); got != models.FieldTypeTextarea {
		t.Errorf("101-rune sample should be textarea, got %q", got)
	}
}
