// Package model defines the shared value types for the Lighthouise
// findings engine: workflow and tool catalog entries, per-engagement
// inputs, and the derived estimates the core computes from them.
package model

import "time"

// Impact is the qualitative automation-opportunity rating of a step.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Valid reports whether the impact is one of the known ratings.
func (i Impact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

// Maturity describes how automated a process step currently is.
type Maturity string

const (
	MaturityManual        Maturity = "manual"
	MaturitySemiAutomated Maturity = "semi-automated"
	MaturityAutomated     Maturity = "automated"
)

// Valid reports whether the maturity is one of the known levels.
func (m Maturity) Valid() bool {
	switch m {
	case MaturityManual, MaturitySemiAutomated, MaturityAutomated:
		return true
	}
	return false
}

// CompanySize buckets a client company by headcount/revenue scale.
type CompanySize string

const (
	SizeStartup    CompanySize = "startup"
	SizeSMB        CompanySize = "smb"
	SizeMidMarket  CompanySize = "mid-market"
	SizeEnterprise CompanySize = "enterprise"
)

// ToolCategory identifies the finance function a vendor tool serves.
type ToolCategory string

const (
	CategoryAP    ToolCategory = "ap"
	CategoryAR    ToolCategory = "ar"
	CategoryFPA   ToolCategory = "fpa"
	CategoryClose ToolCategory = "close"
)

// Valid reports whether the category is one of the known functions.
func (c ToolCategory) Valid() bool {
	switch c {
	case CategoryAP, CategoryAR, CategoryFPA, CategoryClose:
		return true
	}
	return false
}

// ERPLevel describes how deeply a tool integrates with an ERP.
type ERPLevel string

const (
	ERPNative     ERPLevel = "native"
	ERPConnector  ERPLevel = "connector"
	ERPMiddleware ERPLevel = "middleware"
	ERPAPI        ERPLevel = "api"
)

// AIOpportunity is the qualitative automation rating carried by a step.
type AIOpportunity struct {
	Impact      Impact `json:"impact" yaml:"impact"`
	Description string `json:"description" yaml:"description"`
}

// WorkflowStep is one ordered stage of a business-process workflow.
// StepNumber is 1-based and dense within its workflow.
type WorkflowStep struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	StepNumber    int           `json:"step_number" yaml:"step_number"`
	AIOpportunity AIOpportunity `json:"ai_opportunity" yaml:"ai_opportunity"`
}

// Workflow is a named ordered sequence of process steps belonging to
// one business function. Immutable after catalog load.
type Workflow struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	FunctionID string         `json:"function_id" yaml:"function_id"`
	ProcessID  string         `json:"process_id" yaml:"process_id"`
	Steps      []WorkflowStep `json:"steps" yaml:"steps"`
}

// Pricing describes a vendor's pricing model.
type Pricing struct {
	Model         string `json:"model" yaml:"model"`
	StartingPrice string `json:"starting_price,omitempty" yaml:"starting_price,omitempty"`
	Notes         string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AIMaturity classifies how central AI is to a vendor's product.
type AIMaturity string

const (
	AINative      AIMaturity = "ai-native"
	AIEnabled     AIMaturity = "ai-enabled"
	AITraditional AIMaturity = "traditional"
)

// Tool is a vendor product in the catalog. FitScores is sparse: a tool
// may score against zero, some, or all steps of workflows in its
// category. Per-step scores take precedence over OverallFitScore.
type Tool struct {
	ID               string              `json:"id" yaml:"id"`
	Name             string              `json:"name" yaml:"name"`
	Vendor           string              `json:"vendor" yaml:"vendor"`
	Category         ToolCategory        `json:"category" yaml:"category"`
	Description      string              `json:"description" yaml:"description"`
	KeyFeatures      []string            `json:"key_features" yaml:"key_features"`
	CompanySizes     []CompanySize       `json:"company_sizes" yaml:"company_sizes"`
	Industries       []string            `json:"industries" yaml:"industries"`
	SubSectors       []string            `json:"sub_sectors,omitempty" yaml:"sub_sectors,omitempty"`
	Pricing          Pricing             `json:"pricing" yaml:"pricing"`
	Integrations     []string            `json:"integrations" yaml:"integrations"`
	AIMaturity       AIMaturity          `json:"ai_maturity" yaml:"ai_maturity"`
	ERPCompatibility map[string]ERPLevel `json:"erp_compatibility,omitempty" yaml:"erp_compatibility,omitempty"`
	FitScores        map[string]int      `json:"fit_scores,omitempty" yaml:"fit_scores,omitempty"`
	OverallFitScore  int                 `json:"overall_fit_score" yaml:"overall_fit_score"`
}

// SupportsSize reports whether the tool targets the given company size.
func (t *Tool) SupportsSize(size CompanySize) bool {
	for _, s := range t.CompanySizes {
		if s == size {
			return true
		}
	}
	return false
}

// ServesSubSector reports whether the tool lists the given sub-sector.
func (t *Tool) ServesSubSector(subSector string) bool {
	for _, s := range t.SubSectors {
		if s == subSector {
			return true
		}
	}
	return false
}

// CompanyContext carries per-engagement company attributes used to
// bias ranking and classification. It never mutates catalog data.
type CompanyContext struct {
	CompanyName string      `json:"company_name" yaml:"company_name"`
	Industry    string      `json:"industry" yaml:"industry"`
	CompanySize CompanySize `json:"company_size" yaml:"company_size"`
	SubSector   string      `json:"sub_sector,omitempty" yaml:"sub_sector,omitempty"`
	ERP         string      `json:"erp,omitempty" yaml:"erp,omitempty"`
}

// SavingsRange is a low/mid/high annual dollar savings estimate.
type SavingsRange struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Add returns the elementwise sum of two ranges.
func (s SavingsRange) Add(o SavingsRange) SavingsRange {
	return SavingsRange{Low: s.Low + o.Low, Mid: s.Mid + o.Mid, High: s.High + o.High}
}

// TopTool names the best-ranked vendor for a step together with its
// effective fit score.
type TopTool struct {
	Name     string `json:"name"`
	FitScore int    `json:"fit_score"`
}

// StepSavingsEstimate is the derived savings result for one assessed
// step. Recomputed on every request; never persisted as source of
// truth.
type StepSavingsEstimate struct {
	StepID              string       `json:"step_id"`
	StepTitle           string       `json:"step_title"`
	StepNumber          int          `json:"step_number"`
	Maturity            Maturity     `json:"maturity"`
	CapacityWeight      float64      `json:"capacity_weight"`
	AutomationPotential float64      `json:"automation_potential"`
	Savings             SavingsRange `json:"savings"`
	TopTool             *TopTool     `json:"top_tool,omitempty"`
}

// ProcessFindings aggregates step estimates for one assessed process.
// TotalSavings is the elementwise sum over StepEstimates.
type ProcessFindings struct {
	ProcessName       string                `json:"process_name"`
	TeamSize          float64               `json:"team_size"`
	AssessedStepCount int                   `json:"assessed_step_count"`
	TotalStepCount    int                   `json:"total_step_count"`
	TotalSavings      SavingsRange          `json:"total_savings"`
	StepEstimates     []StepSavingsEstimate `json:"step_estimates"`
	Commentary        string                `json:"commentary,omitempty"`
}

// Challenge is one predictable challenge carried by an archetype.
type Challenge struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	EvidenceHint string `json:"evidence_hint"`
}

// PriorityArea is a ranked process area worth investigating first.
type PriorityArea struct {
	ProcessID string `json:"process_id"`
	Rank      int    `json:"rank"`
	Rationale string `json:"rationale"`
}

// CompanyDiagnostic is the classifier output: archetype, predictable
// challenges, and ranked priority process areas. A pure function of
// its inputs.
type CompanyDiagnostic struct {
	CompanyArchetype     string         `json:"company_archetype"`
	ArchetypeDescription string         `json:"archetype_description"`
	Challenges           []Challenge    `json:"challenges"`
	PriorityAreas        []PriorityArea `json:"priority_areas"`
	PainPointNotes       string         `json:"pain_point_notes,omitempty"`
}

// CompanyEnrichment is the shape consumed from the external
// financial-data collaborator. Every field is optional; absence is
// valid and must never break fit or savings computation.
type CompanyEnrichment struct {
	Description  *string  `json:"description,omitempty"`
	Revenue      *float64 `json:"revenue,omitempty"`
	Headcount    *int     `json:"headcount,omitempty"`
	Headquarters *string  `json:"headquarters,omitempty"`
	Founded      *int     `json:"founded,omitempty"`
	SubSector    *string  `json:"sub_sector,omitempty"`
	Website      *string  `json:"website,omitempty"`
}

// StepAnswer is the intake answer for one step of one process.
type StepAnswer struct {
	StepID   string   `json:"step_id" yaml:"step_id"`
	Maturity Maturity `json:"maturity" yaml:"maturity"`
}

// ProcessAnswers is the intake for one assessed process: team inputs
// plus per-step maturity answers. Steps without an answer are treated
// as unassessed and excluded from findings.
type ProcessAnswers struct {
	WorkflowID string       `json:"workflow_id" yaml:"workflow_id"`
	TeamSize   float64      `json:"team_size" yaml:"team_size"`
	Answers    []StepAnswer `json:"answers" yaml:"answers"`
}

// Assumptions are the engagement-level estimation knobs.
type Assumptions struct {
	CostPerPerson float64 `json:"cost_per_person" yaml:"cost_per_person"`
	RangeFactor   float64 `json:"range_factor" yaml:"range_factor"`
}

// EngagementFindings is the full computed result for one engagement.
type EngagementFindings struct {
	Context           CompanyContext              `json:"context"`
	Enrichment        *CompanyEnrichment          `json:"enrichment,omitempty"`
	Diagnostic        CompanyDiagnostic           `json:"diagnostic"`
	FindingsByProcess map[string]*ProcessFindings `json:"findings_by_process"`
	GrandTotal        SavingsRange                `json:"grand_total"`
	Assumptions       Assumptions                 `json:"assumptions"`
}

// EngagementSnapshot is the persisted replay/debugging record of one
// computed engagement.
type EngagementSnapshot struct {
	ID                string                      `json:"id"`
	Context           CompanyContext              `json:"context"`
	PerProcessAnswers []ProcessAnswers            `json:"per_process_answers"`
	Diagnostic        CompanyDiagnostic           `json:"diagnostic"`
	FindingsByProcess map[string]*ProcessFindings `json:"findings_by_process"`
	Assumptions       Assumptions                 `json:"assumptions"`
	CreatedAt         time.Time                   `json:"created_at"`
}
