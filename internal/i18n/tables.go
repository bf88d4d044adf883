package i18n

// tables carries the UI strings per language. Spanish, Somali, and Hmong
// cover the major non-English communities on the lakes the sheet tracks.
var tables = map[string]map[string]string{
	"en": {
		"status_loading":   "Loading ice reports…",
		"status_ready":     "Ice reports loaded",
		"status_transport": "Could not reach the report sheet — showing the last loaded data",
		"status_decode":    "The report sheet returned unreadable data — showing the last loaded data",
		"col_date":         "Date",
		"col_lake":         "Lake",
		"col_coords":       "Coordinates",
		"col_thickness":    "Thickness",
		"col_info":         "Info",
		"unit_in":          "in",
		"unit_cm":          "cm",
		"thickness_none":   "not measured",
	},
	"es": {
		"status_loading":   "Cargando informes de hielo…",
		"status_ready":     "Informes de hielo cargados",
		"status_transport": "No se pudo acceder a la hoja de informes; se muestran los últimos datos cargados",
		"status_decode":    "La hoja de informes devolvió datos ilegibles; se muestran los últimos datos cargados",
		"col_date":         "Fecha",
		"col_lake":         "Lago",
		"col_coords":       "Coordenadas",
		"col_thickness":    "Grosor",
		"col_info":         "Información",
		"unit_in":          "pulg",
		"unit_cm":          "cm",
		"thickness_none":   "sin medir",
	},
	"so": {
		"status_loading":   "Warbixinnada barafka ayaa soo dhacaya…",
		"status_ready":     "Warbixinnada barafka waa la soo geliyey",
		"status_transport": "Xaashida warbixinta lama heli karo — waxaa la muujinayaa xogtii u dambeysay",
		"status_decode":    "Xaashida warbixintu waxay soo celisay xog aan la akhrin karin — waxaa la muujinayaa xogtii u dambeysay",
		"col_date":         "Taariikh",
		"col_lake":         "Haro",
		"col_coords":       "Goobta",
		"col_thickness":    "Dhumucda",
		"col_info":         "Faahfaahin",
		"unit_in":          "injir",
		"unit_cm":          "cm",
		"thickness_none":   "lama qiyaasin",
	},
	"hmn": {
		"status_loading":   "Tab tom rub cov ntawv qhia dej khov…",
		"status_ready":     "Cov ntawv qhia dej khov rub tiav lawm",
		"status_transport": "Mus tsis tau rau daim ntawv qhia — tseem qhia cov ntaub ntawv qub",
		"status_decode":    "Daim ntawv qhia xa cov ntaub ntawv nyeem tsis tau — tseem qhia cov ntaub ntawv qub",
		"col_date":         "Hnub",
		"col_lake":         "Pas dej",
		"col_coords":       "Qhov chaw",
		"col_thickness":    "Qhov tuab",
		"col_info":         "Lus qhia",
		"unit_in":          "in",
		"unit_cm":          "cm",
		"thickness_none":   "tsis tau ntsuas",
	},
}
