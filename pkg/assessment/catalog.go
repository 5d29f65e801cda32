package assessment

// Anchor describes what a 0, 3 and 5 answer look like for a question.
type Anchor struct {
	A0 string `json:"a0"`
	A3 string `json:"a3"`
	A5 string `json:"a5"`
}

// Item is one catalog question.
type Item struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Anchor      Anchor `json:"anchor"`
}

type dimensionItems [NumDimensions][]Item

// catalog lists the valid sub-criteria per function and dimension.
// SALES_MARKETING, FINANCE_ADMIN and INTERNAL_INTEL have no questions yet.
var catalog = map[FunctionName]dimensionItems{
	Operations: {
		Functionality: {
			{"sops", "Documented SOPs — order-to-cash, scheduling, QC.", "Coverage & currency of core SOPs.", Anchor{"none", "partial/key steps", "versioned"}},
			{"roles", "Role Clarity — handoffs between teams.", "Clarity & enforcement of handoffs.", Anchor{"unclear", "mostly", "RACI"}},
			{"systems", "System Coverage — WMS/ERP, scheduling, task mgmt.", "Fit-for-purpose coverage vs spreadsheets.", Anchor{"sheets", "single", "fit"}},
			{"integration", "Integration — ERP↔inventory↔dispatch↔finance.", "Stability & breadth of integrations.", Anchor{"siloed", "partial", "integrated"}},
			{"measurement", "Process Measurement — cycle time, OTIF, defect rate.", "How metrics are captured & surfaced.", Anchor{"none", "manual", "dashboards"}},
		},
		Friction: {
			{"manual_entry", "Manual Data Entry — % touch time.", "Share of work that's manual.", Anchor{"high", "some", "low"}},
			{"approvals", "Approval Bottlenecks — PO/job sign-offs.", "Time to decision.", Anchor{"slow", "ok", "fast"}},
			{"duplication", "Duplication — double capture/rekey.", "Duplicate entry prevalence.", Anchor{"common", "some", "none"}},
			{"rework", "Rework Rate — % jobs redone.", "Rework intensity.", Anchor{"high", "some", "low"}},
			{"downtime", "System Downtime/Delays — planning/ERP.", "Outage/slowdown frequency.", Anchor{"freq", "monthly", "rare"}},
		},
		DataFitness: {
			{"completeness", "Data Completeness — item codes, BOMs, job IDs.", "Required fields present.", Anchor{"incomplete", "mixed", "complete"}},
			{"accuracy", "Accuracy — stock deltas, route variance.", "Error frequency.", Anchor{"poor", "ok", "high"}},
			{"access", "Accessibility — ops staff can self-serve.", "Appropriate self-serve access.", Anchor{"gatekept", "partial", "self-serve"}},
			{"format", "Format Standardisation — units, SKUs, naming.", "Standards adherence.", Anchor{"chaos", "mostly", "catalogue"}},
			{"data_integration", "Data Integration — ERP↔WMS↔BI.", "Unification level.", Anchor{"none", "some", "unified"}},
		},
		ChangeReadiness: {
			{"leadership", "Leadership Buy-in — ops head sponsorship.", "Sponsor energy.", Anchor{"resist", "neutral", "driving"}},
			{"culture", "Innovation Culture — kaizen/continuous improvement.", "Continuous improvement cadence.", Anchor{"never", "adhoc", "routine"}},
			{"past_adoption", "Past Tech Adoption — ERP upgrades succeeded?", "Track record of change.", Anchor{"failed", "mixed", "success"}},
			{"training", "Training Willingness — floor teams upskill.", "Willingness to learn.", Anchor{"reluctant", "willing", "eager"}},
			{"resources", "Resources — time/budget/SME available.", "Resourcing for improvement.", Anchor{"none", "limited", "allocated"}},
		},
	},
	CustomerExperience: {
		Functionality: {
			{"sops", "SOPs — intake, triage, escalation, refunds.", "Process coverage.", Anchor{"none", "partial", "versioned"}},
			{"roles", "Role Clarity — agent vs team lead vs QA.", "Ownership of tasks.", Anchor{"unclear", "mostly", "RACI"}},
			{"systems", "System Coverage — helpdesk/CRM/telephony/KB.", "Tooling sufficiency.", Anchor{"adhoc", "single", "fit"}},
			{"integration", "Integration — CRM↔helpdesk↔billing↔comms.", "Data flow between CX tools.", Anchor{"siloed", "partial", "stable"}},
			{"measurement", "Measurement — SLA, FRT, AHT, CSAT/NPS in dashboards.", "Operational telemetry.", Anchor{"none", "manual", "dashboards"}},
		},
		Friction: {
			{"manual_entry", "Manual Entry — notes/rekeying between tools.", "Manual activity share.", Anchor{"high", "some", "low"}},
			{"approvals", "Approval Bottlenecks — goodwill/discounts/RMAs.", "Time to authorise.", Anchor{"slow", "ok", "fast"}},
			{"duplication", "Duplication — duplicate tickets/accounts.", "Duplicates prevalence.", Anchor{"common", "some", "rare"}},
			{"rework", "Rework — reopened tickets % / transfers.", "Amount of rework.", Anchor{"high", "some", "low"}},
			{"downtime", "Downtime/Delays — telephony/queue outages.", "Outage frequency.", Anchor{"freq", "monthly", "rare"}},
		},
		DataFitness: {
			{"completeness", "Completeness — CRM required fields, contact history.", "Data field fill.", Anchor{"incomplete", "mixed", "complete"}},
			{"accuracy", "Accuracy — wrong contact/entitlement.", "Error rate.", Anchor{"poor", "ok", "high"}},
			{"access", "Accessibility — 360° customer view.", "Context availability.", Anchor{"fragmented", "partial", "unified"}},
			{"standardisation", "Standardisation — tagging, reasons, dispositions.", "Taxonomy discipline.", Anchor{"inconsistent", "improving", "strict"}},
			{"data_integration", "Integration — events in one timeline.", "Timeline consolidation.", Anchor{"none", "partial", "consolidated"}},
		},
		ChangeReadiness: {
			{"leadership", "Leadership Buy-in — CX lead owns outcomes.", "Sponsor engagement.", Anchor{"resist", "neutral", "driving"}},
			{"culture", "Innovation Culture — macros, AI, self-service experiments.", "Experiment cadence.", Anchor{"static", "adhoc", "routine"}},
			{"past_adoption", "Past Adoption — helpdesk/CRM rollouts stuck or shipped?", "Rollout track record.", Anchor{"failed", "mixed", "success"}},
			{"training", "Training — playbooks, QA coaching cadence.", "Enablement rigour.", Anchor{"reluctant", "willing", "eager"}},
			{"resources", "Resources — content, ops engineer, budget.", "Capacity to execute.", Anchor{"none", "limited", "allocated"}},
		},
	},
}

// Short end-cap labels for the 0 and 5 ends of the answer scale.
var anchorOverrides = map[string][2]string{
	"sops":             {"None", "Versioned"},
	"roles":            {"Unclear", "RACI"},
	"systems":          {"Spreadsheets", "Fit"},
	"integration":      {"Siloed", "Integrated"},
	"measurement":      {"None", "Dashboards"},
	"manual_entry":     {"High", "Low"},
	"approvals":        {"Slow", "Fast"},
	"duplication":      {"Common", "None"},
	"rework":           {"High", "Low"},
	"downtime":         {"Frequent", "Rare"},
	"completeness":     {"Incomplete", "Complete"},
	"accuracy":         {"Poor", "High"},
	"access":           {"Gatekept", "Self-serve"},
	"format":           {"Unstandardised", "Standardised"},
	"standardisation":  {"Inconsistent", "Strict"},
	"data_integration": {"Disconnected", "Unified"},
	"leadership":       {"Resistant", "Driving"},
	"culture":          {"Static", "Innovates"},
	"past_adoption":    {"Failed", "Successful"},
	"training":         {"Reluctant", "Eager"},
	"resources":        {"None", "Allocated"},
}

// Items returns the catalog questions for a function and dimension.
// The returned slice must not be modified.
func Items(fn FunctionName, d Dimension) []Item {
	if !d.Valid() {
		return nil
	}
	return catalog[fn][d]
}

// CatalogItem looks up a single question.
func CatalogItem(fn FunctionName, d Dimension, key string) (Item, bool) {
	for _, it := range Items(fn, d) {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// Ends returns the short labels for the 0 and 5 ends of the scale,
// falling back to the item's own anchors.
func (it Item) Ends() (left, right string) {
	if o, ok := anchorOverrides[it.Key]; ok {
		return o[0], o[1]
	}
	return it.Anchor.A0, it.Anchor.A5
}
