package schema

import (
	"fmt"

	"claimdesk/internal/domain"
)

const classificationPromptTemplate = `Analyze and classify the following documents. For EACH of these 5 categories, determine if it's present:

1. BILL: Hospital or medical bills
2. DISCHARGE_SUMMARY: Patient discharge summaries
3. ID_CARD: Identity cards (Aadhar, PAN, Driver's License, etc.)
4. PHARMACY_BILL: Pharmacy or medicine bills
5. CLAIM_FORM: Insurance claim forms

Documents:
%s

For EACH document type (all 5), you must specify:
- present: true if this type exists, false otherwise
- source_file_id: the exact source file id if present
- confidence: score between 0.0-1.0 if present
- rationale: brief explanation if present

Important: Return information for ALL 5 document types, even if some are not present.`

// BuildClassificationPrompt formats the single classification prompt over the
// annotated concatenation of all pages.
func BuildClassificationPrompt(documentsText string) string {
	return fmt.Sprintf(classificationPromptTemplate, documentsText)
}

const extractionPromptTemplate = `Extract all relevant information from this %s document.
Focus on extracting:
%s

Document content:
%s

Extract as much information as possible. If a field is not found, leave it as null.`

var extractionFocus = map[domain.Category]struct {
	label string
	focus string
}{
	domain.CategoryBill: {
		label: "medical bill",
		focus: `- Hospital/facility name
- Patient name
- Bill number and date
- Admission and discharge dates
- Amount details (total, paid, balance)
- List of billed items or services`,
	},
	domain.CategoryDischargeSummary: {
		label: "discharge summary",
		focus: `- Patient demographics (name, age, gender)
- Admission and discharge dates
- Hospital and doctor name
- Diagnosis
- Procedures performed
- Medications prescribed`,
	},
	domain.CategoryIDCard: {
		label: "ID card",
		focus: `- Type of ID card
- ID number
- Name
- Date of birth
- Gender
- Address
- Issue and expiry dates`,
	},
	domain.CategoryPharmacyBill: {
		label: "pharmacy bill",
		focus: `- Pharmacy name and address
- Bill number and date
- Patient and doctor names
- List of medicines with details
- Amount details (total, discount, paid)`,
	},
	domain.CategoryClaimForm: {
		label: "insurance claim form",
		focus: `- Claim and policy numbers
- Patient name
- Claim and incident dates
- Hospital name
- Claimed amount
- Diagnosis and treatment details
- Insurer name`,
	},
}

// BuildExtractionPrompt formats the per-category extraction prompt for the
// page-joined content of one source file.
func BuildExtractionPrompt(cat domain.Category, content string) string {
	f := extractionFocus[cat]
	return fmt.Sprintf(extractionPromptTemplate, f.label, f.focus, content)
}

const fusedClaimPromptTemplate = `You are an expert insurance claim processor. Analyze ALL the provided documents and perform BOTH classification AND extraction in a single pass.

Documents:
%s

Your task is to:
1. CLASSIFY each of the 5 document types (BILL, DISCHARGE_SUMMARY, ID_CARD, PHARMACY_BILL, CLAIM_FORM):
   - Determine if each type is present in the uploaded documents
   - Provide the exact source file id for each present document
   - Give a confidence score (0.0-1.0) for each present document
   - Explain your reasoning for each classification

2. EXTRACT detailed information from EACH document type that is present, filling the matching *_data object.

IMPORTANT:
- You MUST provide classification info for ALL 5 document types (even if not present, set present=false)
- You MUST extract data for EVERY document type that is present
- If a field is not found, set it to null
- Be thorough and accurate in your extraction`

// BuildFusedClaimPrompt formats the single-call classification-plus-extraction
// prompt.
func BuildFusedClaimPrompt(documentsText string) string {
	return fmt.Sprintf(fusedClaimPromptTemplate, documentsText)
}
