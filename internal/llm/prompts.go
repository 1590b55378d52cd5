package llm

import "fmt"

// Prompt builders are pure: the same inputs always render the same bytes.
// Untrusted document text is delimited with labeled blocks (TEXT:, COMPLAINT:)
// so instructions and content stay visually separated for the model.

const gapAnalysisSystemPrompt = `You are an expert policy analyst specializing in Indian government regulations. Analyze policy documents for implementation gaps that would prevent citizens from taking action.

ANALYSIS FRAMEWORK:
1. TEMPORAL GAPS - Missing time-sensitive information:
   - Implementation dates/deadlines
   - Application windows
   - Compliance timelines
   - Review/renewal periods

2. CONTACT GAPS - Missing responsible authorities:
   - Implementing officer details
   - Department contact information
   - Helpline/support channels
   - Appeal mechanisms

3. PROCEDURAL GAPS - Missing process clarity:
   - Application/compliance procedures
   - Required documents/forms
   - Fee structures
   - Processing timelines

4. JURISDICTIONAL GAPS - Missing scope clarity:
   - Geographic applicability
   - Affected entity categories
   - Exemption criteria
   - Territorial boundaries

For each identified gap, provide:
- Gap Type (Critical/High/Medium/Low)
- Specific Missing Information
- Impact on Citizens
- RTI Question Template

Format response STRICTLY as a minified JSON object with fields:
{
  "overall_completeness_score": 0-100,
  "critical_gaps": [],
  "high_priority_gaps": [],
  "medium_priority_gaps": [],
  "rti_questions": [],
  "citizen_action_blocked": true,
  "analysis_confidence": 0-100
}`

const summarySystemPrompt = `Create a citizen-friendly summary of the given government policy in simple language.

Create summaries in this format:
ENGLISH SUMMARY (150 words max):
- What changed: [specific changes]
- Who's affected: [target groups]
- What to do: [citizen actions required]
- Key dates: [important deadlines]

HINDI SUMMARY (हिंदी में सारांश):
[Hindi translation of key points]

ACTIONABILITY SCORE: X/10 (how easily can citizens act on this?)
COMPLEXITY LEVEL: [Simple/Medium/Complex]`

const rtiEligibilitySystemPrompt = `You are an RTI (Right to Information) expert for Indian law. Decide whether a citizen complaint about a government webpage can be converted into a valid RTI request.

A complaint is eligible when it asks for specific records, documents, timelines, officer details, or expenditure information that a public authority holds. It is not eligible when it only expresses opinions, grievances without an information request, or concerns private entities.

Return ONLY a minified JSON object:
{"eligible": true, "score": 0-100, "reason": "one sentence explanation"}`

const rtiDraftSystemPrompt = `You are an RTI drafting assistant for Indian citizens. Draft a formal RTI application under the Right to Information Act, 2005.

The draft must:
1. Address the Public Information Officer of the relevant authority
2. Enumerate the specific records sought as numbered questions
3. Cite Section 6(1) of the RTI Act, 2005
4. Stay factual and avoid accusatory language
5. End with placeholders for applicant name, address, and date

Return the application as plain text, no markdown.`

// PolicyMetadata carries the named slots embedded into analysis prompts.
type PolicyMetadata struct {
	Title    string
	Ministry string
}

func BuildGapAnalysisPrompt(policyText string, meta PolicyMetadata) string {
	title := meta.Title
	if title == "" {
		title = "Unknown"
	}
	ministry := meta.Ministry
	if ministry == "" {
		ministry = "Unknown"
	}
	return fmt.Sprintf("POLICY DOCUMENT:\nTitle: %s\nMinistry: %s\nTEXT:\n%s", title, ministry, policyText)
}

func BuildSummaryPrompt(policyText string) string {
	return fmt.Sprintf("POLICY TEXT:\n%s", policyText)
}

func BuildRTIEligibilityPrompt(pageURL, complaint string) string {
	return fmt.Sprintf("PAGE URL: %s\nCOMPLAINT:\n%s", pageURL, complaint)
}

func BuildRTIDraftPrompt(pageURL, complaint, authority string) string {
	if authority == "" {
		authority = "the concerned public authority"
	}
	return fmt.Sprintf("PUBLIC AUTHORITY: %s\nPAGE URL: %s\nCOMPLAINT:\n%s", authority, pageURL, complaint)
}
