// Package catalog loads the static workflow and vendor-tool
// definitions and serves read-only lookups over them. A Catalog is
// built once at process start and injected into every consumer; it is
// frozen after load.
package catalog

import (
	_ "embed"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lighthouise/engine/internal/model"
)

//go:embed data/workflows.yaml
var workflowsYAML []byte

//go:embed data/tools.yaml
var toolsYAML []byte

// Catalog holds the immutable workflow and tool definitions.
type Catalog struct {
	workflows     []model.Workflow
	workflowsByID map[string]*model.Workflow
	tools         []model.Tool
	toolsByID     map[string]*model.Tool
	toolOrder     map[string]int
}

// Load parses the embedded catalog data and validates it.
func Load() (*Catalog, error) {
	return load(workflowsYAML, toolsYAML)
}

// LoadFrom builds a Catalog from caller-supplied YAML, used by tests
// to run the core against synthetic catalogs.
func LoadFrom(workflows, tools []byte) (*Catalog, error) {
	return load(workflows, tools)
}

func load(workflowsData, toolsData []byte) (*Catalog, error) {
	var wf struct {
		Workflows []model.Workflow `yaml:"workflows"`
	}
	if err := yaml.Unmarshal(workflowsData, &wf); err != nil {
		return nil, eris.Wrap(err, "catalog: parse workflows")
	}

	var td struct {
		Tools []model.Tool `yaml:"tools"`
	}
	if err := yaml.Unmarshal(toolsData, &td); err != nil {
		return nil, eris.Wrap(err, "catalog: parse tools")
	}

	c := &Catalog{
		workflows:     wf.Workflows,
		workflowsByID: make(map[string]*model.Workflow, len(wf.Workflows)),
		tools:         td.Tools,
		toolsByID:     make(map[string]*model.Tool, len(td.Tools)),
		toolOrder:     make(map[string]int, len(td.Tools)),
	}

	for i := range c.workflows {
		w := &c.workflows[i]
		if w.ID == "" {
			return nil, eris.New("catalog: workflow with empty id")
		}
		if _, dup := c.workflowsByID[w.ID]; dup {
			return nil, eris.Errorf("catalog: duplicate workflow id %q", w.ID)
		}
		if err := validateSteps(w); err != nil {
			return nil, err
		}
		c.workflowsByID[w.ID] = w
	}

	for i := range c.tools {
		t := &c.tools[i]
		if t.ID == "" {
			return nil, eris.New("catalog: tool with empty id")
		}
		if _, dup := c.toolsByID[t.ID]; dup {
			return nil, eris.Errorf("catalog: duplicate tool id %q", t.ID)
		}
		if !t.Category.Valid() {
			return nil, eris.Errorf("catalog: tool %q has unknown category %q", t.ID, t.Category)
		}
		if t.OverallFitScore < 0 || t.OverallFitScore > 100 {
			return nil, eris.Errorf("catalog: tool %q overall fit score out of range", t.ID)
		}
		c.toolsByID[t.ID] = t
		c.toolOrder[t.ID] = i
	}

	zap.L().Info("catalog: loaded",
		zap.Int("workflows", len(c.workflows)),
		zap.Int("tools", len(c.tools)),
	)

	return c, nil
}

// validateSteps checks step numbering is dense, 1-based, and ordered,
// and that every impact rating is a known value.
func validateSteps(w *model.Workflow) error {
	seen := make(map[string]bool, len(w.Steps))
	for i, s := range w.Steps {
		if s.ID == "" {
			return eris.Errorf("catalog: workflow %q step %d has empty id", w.ID, i+1)
		}
		if seen[s.ID] {
			return eris.Errorf("catalog: workflow %q duplicate step id %q", w.ID, s.ID)
		}
		seen[s.ID] = true
		if s.StepNumber != i+1 {
			return eris.Errorf("catalog: workflow %q step %q numbered %d, expected %d",
				w.ID, s.ID, s.StepNumber, i+1)
		}
		if !s.AIOpportunity.Impact.Valid() {
			return eris.Errorf("catalog: workflow %q step %q has unknown impact %q",
				w.ID, s.ID, s.AIOpportunity.Impact)
		}
	}
	return nil
}

// Workflow returns the workflow with the given id. A defined workflow
// with zero steps is returned as-is; callers distinguish
// "not yet available" (empty steps) from "not found" (ok == false).
func (c *Catalog) Workflow(id string) (model.Workflow, bool) {
	w, ok := c.workflowsByID[id]
	if !ok {
		return model.Workflow{}, false
	}
	return *w, true
}

// Workflows returns all workflows that have at least one step, in
// catalog order.
func (c *Catalog) Workflows() []model.Workflow {
	out := make([]model.Workflow, 0, len(c.workflows))
	for _, w := range c.workflows {
		if len(w.Steps) > 0 {
			out = append(out, w)
		}
	}
	return out
}

// WorkflowStep returns a single step of a workflow.
func (c *Catalog) WorkflowStep(workflowID, stepID string) (model.WorkflowStep, bool) {
	w, ok := c.workflowsByID[workflowID]
	if !ok {
		return model.WorkflowStep{}, false
	}
	for _, s := range w.Steps {
		if s.ID == stepID {
			return s, true
		}
	}
	return model.WorkflowStep{}, false
}

// Tool returns the tool with the given id.
func (c *Catalog) Tool(id string) (model.Tool, bool) {
	t, ok := c.toolsByID[id]
	if !ok {
		return model.Tool{}, false
	}
	return *t, true
}

// ToolsByCategory returns all tools in a category, in catalog order.
func (c *Catalog) ToolsByCategory(cat model.ToolCategory) []model.Tool {
	var out []model.Tool
	for _, t := range c.tools {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// ToolsByIDs returns the tools for the given ids in input order,
// silently dropping unknown ids.
func (c *Catalog) ToolsByIDs(ids []string) []model.Tool {
	out := make([]model.Tool, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.toolsByID[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// Tools returns every tool in catalog order.
func (c *Catalog) Tools() []model.Tool {
	out := make([]model.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// ToolOrder returns the catalog insertion index of a tool id, used as
// the final ranking tie-break. Unknown ids sort last.
func (c *Catalog) ToolOrder(id string) int {
	if i, ok := c.toolOrder[id]; ok {
		return i
	}
	return len(c.tools)
}

// ERPCompatibility returns the compatibility level of a tool for the
// named ERP, if declared. ERP names match case-insensitively.
func ERPCompatibility(t *model.Tool, erp string) (model.ERPLevel, bool) {
	if erp == "" || t.ERPCompatibility == nil {
		return "", false
	}
	if level, ok := t.ERPCompatibility[erp]; ok {
		return level, true
	}
	for name, level := range t.ERPCompatibility {
		if strings.EqualFold(name, erp) {
			return level, true
		}
	}
	return "", false
}
