package metafields

// Definition is the name/key/type triple of a custom metafield definition.
type Definition struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Type string `json:"type"`
}

// ProtectedNames are theme-owned PRODUCT definitions that survive the
// orphan cleanup.
var ProtectedNames = []string{
	"3D Viewer",
	"Produktdetails",
	"Themed Galerie",
	"Produkt Features",
	"Konfigurator URL",
	"Datenblätter",
}

// GeneralDefinitions are created on PRODUCTVARIANT without a category
// constraint. Keys must stay unique within the list.
var GeneralDefinitions = []Definition{
	{"Marge", "marge", "number_decimal"},
	{"Marktplatz-Preis", "marktplatz_preis", "number_decimal"},
	{"Lieferzeit", "lieferzeit", "single_line_text_field"},
	{"Lieferzeit Vorbesteller", "lieferzeit_vorbesteller", "single_line_text_field"},
	{"Marke", "marke", "single_line_text_field"},
	{"Hersteller", "hersteller", "single_line_text_field"},
	{"Hersteller Adresse mit elektronischer Adresse", "hersteller_adresse_mit_elektronischer_adresse", "multi_line_text_field"},
	{"Hersteller Strasse", "hersteller_strasse", "single_line_text_field"},
	{"Hersteller Ort", "hersteller_ort", "single_line_text_field"},
	{"Hersteller PLZ", "hersteller_plz", "single_line_text_field"},
	{"Hersteller Land", "hersteller_land", "single_line_text_field"},
	{"Hersteller Land ISO-3", "hersteller_land_iso3", "single_line_text_field"},
	{"Hersteller Elektronische Adresse", "hersteller_elektronische_adresse", "single_line_text_field"},
	{"Hersteller Verantwortlicher ausserhalb der EU", "hersteller_verantwortlicher_ausserhalb_eu", "single_line_text_field"},
	{"GPSR Sicherheitsrichtlinien", "gpsr_sicherheitsrichtlinien", "multi_line_text_field"},
	{"GPSR Bedienungsanleitung", "gpsr_bedienungsanleitung", "multi_line_text_field"},
	{"GPSR Zertifikate", "gpsr_zertifikate", "multi_line_text_field"},
	{"GPSR Sicherheitsrichtlinien Text", "gpsr_sicherheitsrichtlinien_text", "multi_line_text_field"},
	{"Produktart", "produktart", "single_line_text_field"},
	{"Produktserie", "produktserie", "single_line_text_field"},
	{"Verwendungsort", "verwendungsort", "single_line_text_field"},
	{"Verwendungsraum", "verwendungsraum", "single_line_text_field"},
	{"Hinweis Batteriegesetz", "hinweis_batteriegesetz", "multi_line_text_field"},
	{"Hinweis Entsorgung", "hinweis_entsorgung", "multi_line_text_field"},

	// tables
	{"Material Gestell", "material_gestell", "single_line_text_field"},
	{"Material Tischplatte", "material_tischplatte", "single_line_text_field"},
	{"Farbe Gestell", "farbe_gestell", "single_line_text_field"},
	{"Farbe Tischplatte", "farbe_tischplatte", "single_line_text_field"},
	{"Bauform Tischplatte", "bauform_tischplatte", "single_line_text_field"},
	{"Stärke Tischplatte", "staerke_tischplatte", "number_decimal"},
	{"Dekor", "dekor", "single_line_text_field"},
	{"Oberfläche", "oberflaeche", "single_line_text_field"},
	{"Höhenverstellbar", "hoehenverstellbar", "single_line_text_field"},
	{"Höhenverstellbar max in cm", "hoehenverstellbar_max", "number_decimal"},
	{"Höhenverstellbar min in cm", "hoehenverstellbar_min", "number_decimal"},
	{"Besonderheit", "besonderheit", "multi_line_text_field"},
	{"Ausziehbar", "ausziehbar", "single_line_text_field"},
	{"Ausziehbar max in cm", "ausziehbar_max", "number_decimal"},
	{"Füße", "legs", "single_line_text_field"},
	{"Schubfach", "schubfach", "single_line_text_field"},
	{"Schubfach Anzahl", "schubfach_anzahl", "single_line_text_field"},

	// seating
	{"Material Sitzflaeche", "material_sitzflaeche", "single_line_text_field"},
	{"Material Rueckenlehne", "material_rueckenlehne", "single_line_text_field"},
	{"Material Armlehne", "material_armlehne", "single_line_text_field"},
	{"Materialeigenschaften", "materialeigenschaften", "single_line_text_field"},
	{"Farbe Sitzflaeche", "farbe_sitzflaeche", "single_line_text_field"},
	{"Hoehe Sitzflaeche", "hoehe_sitzflaeche", "number_decimal"},
	{"Hoehe Sitzmoebel", "hoehe_sitzmoebel", "number_decimal"},
	{"Breite Sitzmoebel", "breite_sitzmoebel", "number_decimal"},
	{"Tiefe Sitzmoebel", "tiefe_sitzmoebel", "number_decimal"},
	{"Durchmesser Sitzflaeche", "durchmesser_sitzflaeche", "number_decimal"},
	{"Bauform Sitzmoebel", "bauform_sitzmoebel", "single_line_text_field"},
	{"Ruecklehnenverstellbarkeit", "ruecklehnenverstellbarkeit", "single_line_text_field"},
	{"Hoehenverstellbar Sitz", "hoehenverstellbar_sitz", "single_line_text_field"},
	{"Besonderheit Sitzmoebel", "besonderheit_sitzmoebel", "single_line_text_field"},
	{"Bodengleiter", "bodengleiter", "single_line_text_field"},
	{"Stappelbar", "stappelbar", "single_line_text_field"},
	{"Aufstehhilfe", "aufstehhilfe", "single_line_text_field"},
	{"Belastbar", "belastbar", "number_decimal"},
	{"Rollen", "rollen", "single_line_text_field"},
	{"Anzahl Sitze", "anzahl_sitze", "number_integer"},
	{"Stoffzusammensetzung", "stoffzusammensetzung", "multi_line_text_field"},

	// beds
	{"Material Bett", "material_bett", "single_line_text_field"},
	{"Material Matratze", "material_matratze", "single_line_text_field"},
	{"Farbe Matratze", "farbe_matratze", "single_line_text_field"},
	{"Farbe Bett", "farbe_bett", "single_line_text_field"},
	{"Farbe 2 Bett", "farbe_2_bett", "single_line_text_field"},
	{"Hoehe Bett Kopfteil", "hoehe_bett_kopfteil", "number_decimal"},
	{"Hoehe Bett Fussteil", "hoehe_bett_fussteil", "number_decimal"},
	{"Breite Bett", "breite_bett", "number_decimal"},
	{"Tiefe Bett", "tiefe_bett", "number_decimal"},
	{"Bodenfreiheit Bett", "bodenfreiheit_bett", "number_decimal"},
	{"Einstiegshoehe", "einstiegshoehe", "number_decimal"},
	{"Einlegetiefe Lattenrost", "einlegetiefe_lattenrost", "number_decimal"},
	{"Bauform Bett", "bauform_bett", "single_line_text_field"},
	{"Lattenrost", "lattenrost", "single_line_text_field"},
	{"Matratze", "matratze", "single_line_text_field"},
	{"Ausziehbares", "ausziehbares", "single_line_text_field"},

	// cabinets
	{"Material Schrank", "material_schrank", "single_line_text_field"},
	{"Farbe Schrank", "farbe_schrank", "single_line_text_field"},
	{"Farbe 2 Schrank", "farbe_2_schrank", "single_line_text_field"},
	{"Hoehe Schrank", "hoehe_schrank", "number_decimal"},
	{"Breite Schrank", "breite_schrank", "number_decimal"},
	{"Tiefe Schrank", "tiefe_schrank", "number_decimal"},
	{"Bauform Schrank", "bauform_schrank", "single_line_text_field"},
	{"Besonderheit Schrank", "besonderheit_schrank", "multi_line_text_field"},
	{"Tueren", "tueren", "number_integer"},
	{"Faecher", "faecher", "number_integer"},

	// lamps
	{"Material Basis", "material_basis", "single_line_text_field"},
	{"Material Schirm", "material_schirm", "single_line_text_field"},
	{"Farbe Basis", "farbe_basis", "single_line_text_field"},
	{"Farbe Lampenschirm", "farbe_lampenschirm", "single_line_text_field"},
	{"Tiefe Lampe", "tiefe_lampe", "number_decimal"},
	{"Hoehe Lampe", "hoehe_lampe", "number_decimal"},
	{"Breite Lampe", "breite_lampe", "number_decimal"},
	{"Durchmesser Lampe Basis", "durchmesser_lampe_basis", "number_decimal"},
	{"Durchmesser Lampenschirm oben", "durchmesser_lampenschirm_oben", "number_decimal"},
	{"Durchmesser Lampenschirm unten", "durchmesser_lampenschirm_unten", "number_decimal"},
	{"Hoehe Lampenschirm", "hoehe_lampenschirm", "number_decimal"},
	{"Einaumasse", "einaumasse", "number_decimal"},
	{"Einbautiefe", "einbautiefe", "number_decimal"},
	{"Bauform Lampe", "bauform_lampe", "single_line_text_field"},
	{"Besonderheit Leuchten", "besonderheit_leuchten", "single_line_text_field"},
	{"Dimmbarkeit", "dimmbarkeit", "single_line_text_field"},
	{"Dimmer Art", "dimmer_art", "single_line_text_field"},
	{"Lichtquelle", "lichtquelle", "single_line_text_field"},
	{"Lichtquelle Art", "lichtquelle_art", "single_line_text_field"},
	{"Lumen", "lumen", "number_integer"},
	{"Leistung", "leistung", "number_decimal"},
	{"Anzahl der Lichtquellen", "anzahl_lichtquellen", "number_integer"},
	{"EEC", "eec", "multi_line_text_field"},
	{"EEC-Specktrum", "eec_specktrum", "multi_line_text_field"},
	{"Fassung", "fassung", "single_line_text_field"},
	{"Lichtfarbe", "lichtfarbe", "single_line_text_field"},
	{"Lichfarbwert", "lichfarbwert", "number_integer"},
	{"Schutzart", "schutzart", "single_line_text_field"},
	{"Schutzklasse", "schutzklasse", "single_line_text_field"},
	{"Lebensdauer", "lebensdauer", "number_integer"},
	{"Anschluss", "anschluss", "single_line_text_field"},
	{"Schalter", "schalter", "single_line_text_field"},
	{"Schalter Art", "schalter_art", "single_line_text_field"},
	{"Smarthome", "smarthome", "single_line_text_field"},
	{"Smarthome Art", "smarthome_art", "single_line_text_field"},

	// rugs and textiles
	{"Befahrbarkeit", "befahrbarkeit", "single_line_text_field"},
	{"Belastung", "belastung", "number_decimal"},
	{"Material Stoff", "material_stoff", "single_line_text_field"},
	{"Farbe Stoff", "farbe_stoff", "single_line_text_field"},
	{"Breite Stoff", "breite_stoff", "number_decimal"},
	{"Laenge Stoff", "laenge_stoff", "number_decimal"},
	{"Dicke Stoff", "dicke_stoff", "number_decimal"},
	{"Durchmesser Stoff", "durchmesser_stoff", "number_decimal"},
	{"Bauform Stoff", "bauform_stoff", "single_line_text_field"},
	{"Oberflaeche Stoff", "oberflaeche_stoff", "single_line_text_field"},
	{"Besonderheit Stoff", "besonderheit_stoff", "single_line_text_field"},
	{"Lieferumfang", "lieferumfang", "multi_line_text_field"},
	{"Fuellung", "fuellung", "multi_line_text_field"},
}
