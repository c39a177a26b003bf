package translation

// DefaultLocale is the universal fallback; its preset is always complete.
const DefaultLocale = "en"

var presets = map[string]LabelSet{
	"en": {
		InvoiceTitle:  "INVOICE",
		InvoiceNo:     "INVOICE NO.",
		DateIssued:    "DATE ISSUED",
		DueDate:       "DUE DATE",
		Amount:        "AMOUNT",
		From:          "FROM",
		BillTo:        "BILL TO",
		ShipTo:        "SHIP TO",
		Product:       "PRODUCT",
		Description:   "DESCRIPTION",
		Qty:           "QTY",
		Price:         "PRICE",
		Total:         "TOTAL",
		Subtotal:      "SUBTOTAL",
		Discount:      "DISCOUNT",
		Tax:           "TAX (10%)",
		Shipping:      "SHIPPING",
		GrandTotal:    "TOTAL",
		ThankYou:      "Thank you for your purchase!",
		PageNumber:    "Generated via Order App",
		StatusPaid:    "PAID",
		StatusPending: "PENDING",
	},
	"es": {
		InvoiceTitle:  "FACTURA",
		InvoiceNo:     "Nº FACTURA",
		DateIssued:    "FECHA EMISIÓN",
		DueDate:       "FECHA VENCIMIENTO",
		Amount:        "IMPORTE",
		From:          "DE",
		BillTo:        "FACTURAR A",
		ShipTo:        "ENVIAR A",
		Product:       "PRODUCTO",
		Description:   "DESCRIPCIÓN",
		Qty:           "CANT.",
		Price:         "PRECIO",
		Total:         "TOTAL",
		Subtotal:      "SUBTOTAL",
		Discount:      "DESCUENTO",
		Tax:           "IMPUESTO (10%)",
		Shipping:      "ENVÍO",
		GrandTotal:    "TOTAL",
		ThankYou:      "¡Gracias por su compra!",
		PageNumber:    "Generado vía Order App",
		StatusPaid:    "PAGADO",
		StatusPending: "PENDIENTE",
	},
	"fr": {
		InvoiceTitle:  "FACTURE",
		InvoiceNo:     "N° FACTURE",
		DateIssued:    "DATE D'ÉMISSION",
		DueDate:       "DATE D'ÉCHÉANCE",
		Amount:        "MONTANT",
		From:          "DE",
		BillTo:        "FACTURER À",
		ShipTo:        "EXPÉDIER À",
		Product:       "PRODUIT",
		Description:   "DESCRIPTION",
		Qty:           "QTÉ",
		Price:         "PRIX",
		Total:         "TOTAL",
		Subtotal:      "SOUS-TOTAL",
		Discount:      "REMISE",
		Tax:           "TVA (10%)",
		Shipping:      "LIVRAISON",
		GrandTotal:    "TOTAL",
		ThankYou:      "Merci pour votre achat !",
		PageNumber:    "Généré via Order App",
		StatusPaid:    "PAYÉ",
		StatusPending: "EN ATTENTE",
	},
	"de": {
		InvoiceTitle:  "RECHNUNG",
		InvoiceNo:     "RECHNUNGS-NR.",
		DateIssued:    "AUSSTELLUNGSDATUM",
		DueDate:       "FÄLLIGKEITS-DATUM",
		Amount:        "BETRAG",
		From:          "VON",
		BillTo:        "RECHNUNG AN",
		ShipTo:        "LIEFERUNG AN",
		Product:       "PRODUKT",
		Description:   "BESCHREIBUNG",
		Qty:           "MENGE",
		Price:         "PREIS",
		Total:         "GESAMT",
		Subtotal:      "ZWISCHENSUMME",
		Discount:      "RABATT",
		Tax:           "STEUER (10%)",
		Shipping:      "VERSAND",
		GrandTotal:    "GESAMTSUMME",
		ThankYou:      "Vielen Dank für Ihren Einkauf!",
		PageNumber:    "Erstellt mit Order App",
		StatusPaid:    "BEZAHLT",
		StatusPending: "AUSSTEHEND",
	},
	"pt": {
		InvoiceTitle:  "FATURA",
		InvoiceNo:     "Nº FATURA",
		DateIssued:    "DATA DE EMISSÃO",
		DueDate:       "DATA DE VENCIMENTO",
		Amount:        "VALOR",
		From:          "DE",
		BillTo:        "FATURAR PARA",
		ShipTo:        "ENVIAR PARA",
		Product:       "PRODUTO",
		Description:   "DESCRIÇÃO",
		Qty:           "QTD",
		Price:         "PREÇO",
		Total:         "TOTAL",
		Subtotal:      "SUBTOTAL",
		Discount:      "DESCONTO",
		Tax:           "IMPOSTO (10%)",
		Shipping:      "FRETE",
		GrandTotal:    "TOTAL",
		ThankYou:      "Obrigado pela sua compra!",
		PageNumber:    "Gerado via Order App",
		StatusPaid:    "PAGO",
		StatusPending: "PENDENTE",
	},
}

// Default returns the English label set.
func Default() LabelSet {
	return presets[DefaultLocale]
}

// Preset returns the built-in label set for a locale and whether the
// locale has one.
func Preset(locale string) (LabelSet, bool) {
	set, ok := presets[locale]
	return set, ok
}

// Locales lists the locale codes with built-in presets, English first.
func Locales() []string {
	return []string{"en", "es", "fr", "de", "pt"}
}
