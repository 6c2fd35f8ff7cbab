package rekognition

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/weijenchou/dogdietlinebot/internal/ports/vision"
)

// Patrones sobre el texto sin espacios. Etiquetas bilingües (zh-TW / en).
var labelPatterns = []struct {
	nutrient vision.Nutrient
	re       *regexp.Regexp
}{
	{vision.NutrientCalories, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:大卡|kcal|cal|卡)`)},
	{vision.NutrientProtein, regexp.MustCompile(`(?i)(?:蛋白質|蛋白|protein)[^\d]*(\d+(?:\.\d+)?)`)},
	{vision.NutrientFat, regexp.MustCompile(`(?i)(?:脂肪|脂防|fat)[^\d]*(\d+(?:\.\d+)?)`)},
	{vision.NutrientFiber, regexp.MustCompile(`(?i)(?:纖維|fibre|fiber)[^\d]*(\d+(?:\.\d+)?)`)},
	{vision.NutrientWater, regexp.MustCompile(`(?i)(?:水分|水份|moisture)[^\d]*(\d+(?:\.\d+)?)`)},
	{vision.NutrientCarbs, regexp.MustCompile(`(?i)(?:碳水化合物|carbohydrates?)[^\d]*(\d+(?:\.\d+)?)`)},
}

var noise = strings.NewReplacer("\n", "", "\r", "", "\t", "", " ", "", "●", "")

// ParseLabel extrae la tabla nutricional de un texto OCR.
// Porcentajes > 100 son lecturas erróneas y se descartan.
func ParseLabel(text string) vision.LabelNutrition {
	text = noise.Replace(text)

	out := vision.LabelNutrition{}
	for _, p := range labelPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if p.nutrient != vision.NutrientCalories && v > 100 {
			continue
		}
		out[p.nutrient] = v
	}
	return out
}

func (c *Client) ExtractLabelNutrition(ctx context.Context, image []byte) (vision.LabelNutrition, error) {
	lines, err := c.detectLines(ctx, image)
	if err != nil {
		return nil, err
	}
	return ParseLabel(strings.Join(lines, "\n")), nil
}
