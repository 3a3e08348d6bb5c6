package models

import "encoding/json"

// ClimateAction is one static catalog entry suggesting an individual
// climate action. The catalog is immutable and never persisted.
type ClimateAction struct {
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

// ActionPair is one sampled catalog entry. It marshals as a two-element
// array [key, {action, icon}], the shape existing consumers expect.
type ActionPair struct {
	Key    string
	Action ClimateAction
}

// MarshalJSON implements the [key, value] pair encoding.
func (p ActionPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Key, p.Action})
}

// ClimateActions is the static climate-action catalog.
var ClimateActions = map[string]ClimateAction{
	"reducir_energia":               {Action: "Reducir el consumo de energía en el hogar", Icon: "plug"},
	"usar_transporte_publico":       {Action: "Usar transporte público o bicicleta", Icon: "bus"},
	"plantar_arboles":               {Action: "Plantar árboles y restaurar bosques", Icon: "tree"},
	"reducir_carne":                 {Action: "Reducir consumo de carne y productos animales", Icon: "drumstick-bite"},
	"comprar_local":                 {Action: "Comprar productos locales y de temporada", Icon: "shopping-basket"},
	"reducir_residuos":              {Action: "Reducir y evitar residuos (menos embalaje)", Icon: "trash-alt"},
	"reciclar":                      {Action: "Separar y reciclar correctamente", Icon: "recycle"},
	"compost":                       {Action: "Hacer compostaje de residuos orgánicos", Icon: "seedling"},
	"eficiencia_electrodomesticos":  {Action: "Usar electrodomésticos eficientes (A++ / Energy Star)", Icon: "bolt"},
	"paneles_solares":               {Action: "Instalar paneles solares o contratar energía renovable", Icon: "solar-panel"},
	"aislamiento":                   {Action: "Mejorar el aislamiento térmico de la vivienda", Icon: "home"},
	"bombillas_led":                 {Action: "Cambiar a bombillas LED de bajo consumo", Icon: "lightbulb"},
	"educacion_activismo":           {Action: "Educar y participar en campañas/activismo climático", Icon: "users"},
	"apoyar_politicas":              {Action: "Apoyar políticas públicas y líderes comprometidos", Icon: "handshake"},
	"reducir_vuelos":                {Action: "Reducir viajes en avión y elegir alternativas", Icon: "plane"},
	"reparar_no_tirar":              {Action: "Reparar objetos en lugar de tirar y comprar nuevo", Icon: "tools"},
	"menos_plastico":                {Action: "Reducir uso de plásticos de un solo uso", Icon: "ban"},
	"ahorro_agua":                   {Action: "Optimizar el consumo de agua (duchas cortas, reparar fugas)", Icon: "tint"},
	"energia_renovable_contrato":    {Action: "Contratar suministro de energía 100% renovable si es posible", Icon: "charging-station"},
	"invertir_sostenible":           {Action: "Invertir o ahorrar en fondos sostenibles / verdes", Icon: "chart-line"},
	"consumo_responsable":           {Action: "Practicar consumo responsable y minimalismo", Icon: "leaf"},
}
