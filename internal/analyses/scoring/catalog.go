package scoring

const (
	msgSubstantive     = "Substantive detail with %d words shows scope and depth"
	msgContactComplete = "Complete contact information makes you easy to reach"
	msgKeywordsStrong  = "Uses %d relevant %s keywords (e.g., %s)"
	msgClearStructure  = "Clear structure with key sections: %s"
	msgQuantified      = "Quantified outcomes help demonstrate impact"

	msgExpand       = "Expand content: %d words is light for screening context"
	msgCondense     = "Condense to improve scannability: %d words is long for a first pass"
	msgAddEmail     = "Add a professional email"
	msgAddPhone     = "Include a phone number"
	msgMoreKeywords = "Add more %s keywords to match role language"
	msgQuantify     = "Quantify outcomes (%, $, time saved, counts)"
	msgFallback     = "Add specific, role-aligned examples"

	msgConsiderAdding = "Consider adding: %s"
	msgMoreMetrics    = `Add more metrics (e.g., "Raised retention by 12%", "Managed 30-bed unit", "Cut costs by $75k")`
	msgCoreSections   = "Add core sections: %s"
	msgTailor         = "Tailor examples to the target job description(s)"

	msgStructure      = "Contains %d key sections: %s"
	msgStructureBasic = "Basic structure detected"
	msgGoodLength     = "Good length with %d words"
	msgAdjustLength   = "Consider adjusting length (currently %d words)"

	msgBullets        = "Use bullets for scanability"
	msgStrongVerbs    = "Start bullets with strong verbs (Led, Improved, Reduced)"
	msgSectionHeaders = "Add clear section headers"
	msgCertsFirst     = "Place certifications/licensure near the top"
	msgConsistent     = "Ensure consistent formatting"

	densityExcellent = "Excellent"
	densityGood      = "Good"
	densityLow       = "Needs Improvement"
)

var strengthFillers = []string{"Professional presentation", "Relevant experience shown"}
