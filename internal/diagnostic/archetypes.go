package diagnostic

import "github.com/lighthouise/engine/internal/model"

// archetypeKeys binds each archetype to the (industry, size) pairs it
// covers. Keys with an empty field act as wildcards in the fallback
// chain; more specific keys always win.
var archetypeKeys = map[string][]tableKey{
	"scaling-software": {
		{Industry: "Technology", Size: model.SizeStartup},
		{Industry: "Technology", Size: model.SizeSMB},
		{Industry: "Technology", Size: model.SizeMidMarket},
	},
	"platform-enterprise": {
		{Industry: "Technology", Size: model.SizeEnterprise},
		{Industry: "Technology"},
	},
	"margin-pressured-manufacturer": {
		{Industry: "Manufacturing", Size: model.SizeMidMarket},
		{Industry: "Manufacturing", Size: model.SizeEnterprise},
		{Industry: "Manufacturing"},
	},
	"volume-driven-distributor": {
		{Industry: "Distribution"},
		{Industry: "Retail"},
		{Industry: "CPG"},
	},
	"compliance-bound-services": {
		{Industry: "Financial Services"},
		{Industry: "Healthcare"},
	},
	"billable-hours-firm": {
		{Industry: "Professional Services"},
	},
	"scaled-org": {
		{Size: model.SizeEnterprise},
		{Size: model.SizeMidMarket},
	},
	"lean-org": {
		{Size: model.SizeStartup},
		{Size: model.SizeSMB},
	},
}

var archetypes = []Archetype{
	{
		Name: "scaling-software",
		Description: "A growth-stage software company whose finance headcount trails revenue growth. " +
			"Processes built for an earlier stage are held together by spreadsheets and heroics.",
		Challenges: []model.Challenge{
			{
				Title:        "Billing complexity outpacing AR",
				Description:  "Usage-based and multi-tier pricing breaks hand-built invoicing and cash application.",
				EvidenceHint: "Rising DSO alongside rising revenue; credit memos issued to fix billing errors.",
			},
			{
				Title:        "Forecast churn",
				Description:  "Board-driven reforecasts consume the FP&A team's capacity every cycle.",
				EvidenceHint: "Multiple forecast versions per quarter maintained in parallel spreadsheets.",
			},
			{
				Title:        "Close stretching past day ten",
				Description:  "Accrual and deferred-revenue entries are manual and dependent on one or two people.",
				EvidenceHint: "Close checklist lives in a spreadsheet with no dependency tracking.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "fpa", Rank: 1, Rationale: "Forecast cycles are the visible bottleneck for a board-managed growth company."},
			{ProcessID: "ar", Rank: 2, Rationale: "Billing and collections complexity compounds with each pricing change."},
			{ProcessID: "close", Rank: 3, Rationale: "Deferred-revenue mechanics make the close disproportionately manual."},
		},
	},
	{
		Name: "platform-enterprise",
		Description: "A large technology organization with mature systems but fragmented processes " +
			"across business units, acquisitions, and regions.",
		Challenges: []model.Challenge{
			{
				Title:        "Process fragmentation",
				Description:  "Each acquired unit runs its own payables and close conventions.",
				EvidenceHint: "Multiple ERP instances; shared-services team reconciling between them.",
			},
			{
				Title:        "Consolidation drag",
				Description:  "Group-level reporting waits on manual intercompany eliminations.",
				EvidenceHint: "Consolidation workbook owned by a single controller.",
			},
			{
				Title:        "Approval sprawl",
				Description:  "Delegation-of-authority matrices are enforced by email rather than workflow.",
				EvidenceHint: "Payment runs delayed waiting on traveling approvers.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "close", Rank: 1, Rationale: "Consolidation and reconciliation effort scales with entity count."},
			{ProcessID: "ap", Rank: 2, Rationale: "Invoice volume across units makes capture and matching the largest labor pool."},
			{ProcessID: "fpa", Rank: 3, Rationale: "Planning data collection spans too many systems to stay manual."},
		},
	},
	{
		Name: "margin-pressured-manufacturer",
		Description: "A manufacturer where thin margins make back-office cost and working-capital " +
			"discipline a direct earnings lever.",
		Challenges: []model.Challenge{
			{
				Title:        "Three-way match exceptions",
				Description:  "Receipt and price variances force manual touch on a large share of invoices.",
				EvidenceHint: "AP staff spend most of their day resolving blocked invoices.",
			},
			{
				Title:        "Deduction leakage",
				Description:  "Customer chargebacks and shortages are written off rather than researched.",
				EvidenceHint: "Deduction write-offs booked monthly without root-cause coding.",
			},
			{
				Title:        "Standard-cost variance noise",
				Description:  "Variance analysis consumes FP&A without isolating controllable drivers.",
				EvidenceHint: "Variance commentary recycled from the prior month.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "ap", Rank: 1, Rationale: "Match-exception labor is the largest automatable block."},
			{ProcessID: "ar", Rank: 2, Rationale: "Deductions and cash application tie up working capital."},
			{ProcessID: "fpa", Rank: 3, Rationale: "Cost variance analysis is high-volume and rule-amenable."},
		},
	},
	{
		Name: "volume-driven-distributor",
		Description: "A high-transaction-volume distribution or retail business where per-document " +
			"processing cost dominates the finance budget.",
		Challenges: []model.Challenge{
			{
				Title:        "Invoice volume scaling linearly with headcount",
				Description:  "Document volume grows with revenue while processing stays manual.",
				EvidenceHint: "AP/AR headcount requisitions tied to volume growth.",
			},
			{
				Title:        "Cash application backlog",
				Description:  "Lockbox and portal payments arrive faster than they can be applied.",
				EvidenceHint: "Unapplied-cash balance carried week over week.",
			},
			{
				Title:        "Credit decisions by gut feel",
				Description:  "New-account credit limits set without scoring or review cadence.",
				EvidenceHint: "Bad-debt spikes concentrated in recently opened accounts.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "ar", Rank: 1, Rationale: "Cash application and collections are the dominant cost pools at volume."},
			{ProcessID: "ap", Rank: 2, Rationale: "Capture and matching automation scales directly with document count."},
			{ProcessID: "close", Rank: 3, Rationale: "High transaction volume makes reconciliation automation pay off."},
		},
	},
	{
		Name: "compliance-bound-services",
		Description: "A regulated financial-services or healthcare organization where control " +
			"requirements shape every finance process.",
		Challenges: []model.Challenge{
			{
				Title:        "Control evidence by screenshot",
				Description:  "SOX-style evidence is gathered manually at quarter end.",
				EvidenceHint: "Shared drives of dated screenshots assembled for auditors.",
			},
			{
				Title:        "Segregation-of-duties workarounds",
				Description:  "Small teams hold conflicting duties patched over with review sign-offs.",
				EvidenceHint: "Audit findings repeated year over year.",
			},
			{
				Title:        "Reconciliation volume",
				Description:  "Account-level certification is exhaustive rather than risk-based.",
				EvidenceHint: "Every account reconciled monthly regardless of balance or activity.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "close", Rank: 1, Rationale: "Certification and evidence workflows are the regulatory pinch point."},
			{ProcessID: "ap", Rank: 2, Rationale: "Payment controls and approval trails automate cleanly."},
			{ProcessID: "fpa", Rank: 3, Rationale: "Regulatory reporting overlaps heavily with management reporting."},
		},
	},
	{
		Name: "billable-hours-firm",
		Description: "A professional-services firm where partner time spent on internal finance is " +
			"directly unbillable and utilization reporting drives the business.",
		Challenges: []model.Challenge{
			{
				Title:        "WIP-to-cash lag",
				Description:  "Time captured late bills late and collects later.",
				EvidenceHint: "Billing cycle starts days after period end waiting on timesheets.",
			},
			{
				Title:        "Partner-driven collections",
				Description:  "Receivables chase depends on relationship owners, not a process.",
				EvidenceHint: "Aged AR concentrated with specific partners.",
			},
			{
				Title:        "Utilization reporting lag",
				Description:  "Capacity decisions are made on month-old data.",
				EvidenceHint: "Utilization dashboard assembled manually each month.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "ar", Rank: 1, Rationale: "Invoice-to-cash is the firm's working-capital engine."},
			{ProcessID: "fpa", Rank: 2, Rationale: "Utilization and capacity reporting is the core management lens."},
			{ProcessID: "ap", Rank: 3, Rationale: "Vendor and expense volume is modest but fully automatable."},
		},
	},
	{
		Name: "scaled-org",
		Description: "A large organization outside the mapped industries. Scale alone predicts " +
			"fragmented systems, approval sprawl, and consolidation effort.",
		Challenges: []model.Challenge{
			{
				Title:        "System fragmentation",
				Description:  "Multiple finance systems with manual handoffs between them.",
				EvidenceHint: "Recurring exports and re-imports between systems of record.",
			},
			{
				Title:        "Close coordination overhead",
				Description:  "Cross-team dependencies managed by status meetings.",
				EvidenceHint: "Daily close stand-ups during the close window.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "close", Rank: 1, Rationale: "Coordination and reconciliation cost grows with organizational scale."},
			{ProcessID: "ap", Rank: 2, Rationale: "Payables volume is the most reliable automation payback at scale."},
			{ProcessID: "fpa", Rank: 3, Rationale: "Data collection across units is the planning bottleneck."},
		},
	},
	{
		Name: "lean-org",
		Description: "A small finance team covering every function at once. The constraint is team " +
			"bandwidth, not process sophistication.",
		Challenges: []model.Challenge{
			{
				Title:        "Key-person dependency",
				Description:  "One person holds the close, the forecast, and the payment run.",
				EvidenceHint: "Finance tasks stall during a single person's vacation.",
			},
			{
				Title:        "Tool sprawl without integration",
				Description:  "Point solutions adopted ad hoc, stitched together by exports.",
				EvidenceHint: "CSV downloads as the integration layer.",
			},
		},
		PriorityAreas: []model.PriorityArea{
			{ProcessID: "ap", Rank: 1, Rationale: "Bill pay is the quickest win for a bandwidth-constrained team."},
			{ProcessID: "close", Rank: 2, Rationale: "A lightweight checklist removes the key-person close risk."},
			{ProcessID: "fpa", Rank: 3, Rationale: "A basic driver model beats spreadsheet forecasting at this stage."},
		},
	},
}

// defaultArchetype is the terminal fallback when neither industry nor
// size resolves against the table.
var defaultArchetype = Archetype{
	Name: "general-finance-org",
	Description: "A finance organization without a closer archetype match. Findings rely on the " +
		"assessed process answers rather than industry priors.",
	Challenges: []model.Challenge{
		{
			Title:        "Manual process baseline",
			Description:  "Most finance organizations retain significant manual effort in document-heavy processes.",
			EvidenceHint: "Per-step maturity answers of 'manual' across AP and close.",
		},
	},
	PriorityAreas: []model.PriorityArea{
		{ProcessID: "ap", Rank: 1, Rationale: "Payables automation has the broadest applicability across industries."},
		{ProcessID: "ar", Rank: 2, Rationale: "Cash application and collections follow close behind."},
		{ProcessID: "close", Rank: 3, Rationale: "Close discipline benefits every organization with audited statements."},
	},
}
