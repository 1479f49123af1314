package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

var (
	nameDateTokens     = []string{"fecha", "date"}
	nameNumberTokens   = []string{"cantidad", "numero", "número"}
	nameTextareaTokens = []string{"observacion", "observación", "comentario"}

	slashDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// longTextThreshold is the sample length above which a field is treated as
// long text.
const longTextThreshold = 100

// typeRule is one ordered classification step; the first rule that fires
// wins. Name rules come before value rules so an empty or absent sample never
// blocks classification.
type typeRule struct {
	match func(sample, nameLower string) bool
	t     models.FieldType
}

var typeRules = []typeRule{
	{func(_, name string) bool { return containsAny(name, nameDateTokens) }, models.FieldTypeDate},
	{func(_, name string) bool { return containsAny(name, nameNumberTokens) }, models.FieldTypeNumber},
	{func(_, name string) bool { return containsAny(name, nameTextareaTokens) }, models.FieldTypeTextarea},
	{func(sample, _ string) bool { return sample != "" && isNumeric(sample) }, models.FieldTypeNumber},
	{func(sample, _ string) bool {
		return slashDatePattern.MatchString(sample) || isoDatePattern.MatchString(sample)
	}, models.FieldTypeDate},
	{func(sample, _ string) bool { return utf8.RuneCountInString(sample) > longTextThreshold }, models.FieldTypeTextarea},
}

// InferType classifies a field from its name and an optional sample value.
// Unrecognized input defaults to text.
func InferType(sample, fieldName string) models.FieldType {
	name := strings.ToLower(fieldName)
	for _, r := range typeRules {
		if r.match(sample, name) {
			return r.t
		}
	}
	return models.FieldTypeText
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
