package llm

import (
	"fmt"
	"strconv"
	"strings"

	"co2-platform/internal/models"
)

// BuildConsequencesPrompt produces the deterministic Spanish prompt asking
// the generative model for exactly five climate consequences of the given
// CO₂ projection, as a bare JSON array.
func BuildConsequencesPrompt(predictions []float64, months int) string {
	var sb strings.Builder

	sb.WriteString("Necesito que actúes como un experto en cambio climático y generes un JSON exclusivamente.\n")
	sb.WriteString("El JSON debe describir las 5 principales consecuencias científicamente reconocidas que ocurrirían ")
	sb.WriteString("si el nivel de CO₂ (ppm) aumentara siguiendo esta proyección: ")
	sb.WriteString(formatSeries(predictions))
	sb.WriteString(fmt.Sprintf(" durante los próximos %d meses.\n\n", months))
	sb.WriteString("Debes cumplir estrictamente los siguientes requisitos:\n\n")
	sb.WriteString("1. La respuesta debe ser ÚNICAMENTE un texto plano con forma de JSON sin explicación adicional, sin texto antes o después.\n")
	sb.WriteString("2. El texto debe ser una lista de exactamente 5 objetos.\n")
	sb.WriteString("3. Cada objeto debe tener la siguiente estructura obligatoria:\n")
	sb.WriteString(`   { "description": "<explicación clara, técnica y profesional>", "impact_level": <número entero entre 1 y 5>, "icon": "" }` + "\n")
	sb.WriteString("4. La descripción debe ser precisa, basada en ciencia climática y explicada en tono profesional, además debe ser corto.\n")
	sb.WriteString("5. El impact_level debe representar la severidad (1 = bajo, 5 = crítico).\n")
	sb.WriteString("6. El icono debe ser uno de los siguientes iconos y debe representar lo que se está diciendo en la consecuencia:\n")
	sb.WriteString(formatIcons(models.Icons))
	sb.WriteString("\n")
	sb.WriteString("7. No debes incluir texto, comentarios, markdown ni explicaciones fuera del JSON.\n\n")
	sb.WriteString("Si no puedes generar algún punto, debes generar igualmente el JSON, nunca otro tipo de salida.")

	return sb.String()
}

func formatSeries(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatIcons(icons []string) string {
	parts := make([]string, len(icons))
	for i, icon := range icons {
		parts[i] = "'" + icon + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
