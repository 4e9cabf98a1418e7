package schema

import "claimdesk/internal/domain"

// JSON-Schema documents (draft 2020-12 subset) for every structured
// generation target. Built as generic maps so they can be shipped to the
// model as a response constraint and compiled locally for validation.

func str() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

func num() map[string]any {
	return map[string]any{"type": []string{"number", "null"}}
}

func strList() map[string]any {
	return map[string]any{
		"type":  []string{"array", "null"},
		"items": map[string]any{"type": "string"},
	}
}

// verdictSchema describes one per-category classification verdict.
func verdictSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"present":        map[string]any{"type": "boolean"},
			"source_file_id": map[string]any{"type": []string{"string", "null"}},
			"confidence":     map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"rationale":      map[string]any{"type": "string"},
		},
		"required": []string{"present"},
	}
}

// classificationSchema is total over categories: one verdict per known kind.
func classificationSchema() map[string]any {
	props := map[string]any{}
	var required []string
	for _, cat := range domain.Categories() {
		props[string(cat)] = verdictSchema()
		required = append(required, string(cat))
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func billSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"hospital_name":  str(),
			"patient_name":   str(),
			"bill_number":    str(),
			"bill_date":      str(),
			"admission_date": str(),
			"discharge_date": str(),
			"total_amount":   num(),
			"paid_amount":    num(),
			"balance_amount": num(),
			"items":          strList(),
		},
	}
}

func dischargeSummarySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"patient_name":         str(),
			"patient_age":          str(),
			"patient_gender":       str(),
			"admission_date":       str(),
			"discharge_date":       str(),
			"hospital_name":        str(),
			"doctor_name":          str(),
			"diagnosis":            str(),
			"procedures_performed": strList(),
			"medications":          strList(),
		},
	}
}

func idCardSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id_type":       str(),
			"id_number":     str(),
			"name":          str(),
			"date_of_birth": str(),
			"gender":        str(),
			"address":       str(),
			"issue_date":    str(),
			"expiry_date":   str(),
		},
	}
}

func pharmacyBillSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"pharmacy_name":    str(),
			"pharmacy_address": str(),
			"bill_number":      str(),
			"bill_date":        str(),
			"patient_name":     str(),
			"doctor_name":      str(),
			"medicines": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"name":     str(),
						"quantity": str(),
						"price":    num(),
					},
				},
			},
			"total_amount": num(),
			"discount":     num(),
			"paid_amount":  num(),
		},
	}
}

func claimFormSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"claim_number":      str(),
			"policy_number":     str(),
			"patient_name":      str(),
			"date_of_claim":     str(),
			"date_of_incident":  str(),
			"hospital_name":     str(),
			"claimed_amount":    num(),
			"diagnosis":         str(),
			"treatment_details": str(),
			"insurer_name":      str(),
		},
	}
}

// fusedClaimSchema combines classification verdicts and per-category payloads
// for the single-call fast path. Payload fields are nullable: the model only
// fills the ones whose verdict is present.
func fusedClaimSchema() map[string]any {
	extraction := map[domain.Category]map[string]any{
		domain.CategoryBill:             billSchema(),
		domain.CategoryDischargeSummary: dischargeSummarySchema(),
		domain.CategoryIDCard:           idCardSchema(),
		domain.CategoryPharmacyBill:     pharmacyBillSchema(),
		domain.CategoryClaimForm:        claimFormSchema(),
	}
	props := map[string]any{}
	var required []string
	for _, cat := range domain.Categories() {
		props[string(cat)+"_classification"] = verdictSchema()
		required = append(required, string(cat)+"_classification")

		payload := extraction[cat]
		payload["type"] = []string{"object", "null"}
		props[string(cat)+"_data"] = payload
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
