package mcp

// Tool describes one invocable tool for tools/list.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

const serverInstructions = `This server provides business opportunity scores based on US Census Bureau data.

Use the get_opportunity_score tool to retrieve scores for specific combinations of:
- US State (e.g., "California", "Texas", "New York")
- Corporation type: c-corp, s-corp, sole-proprietor, partnership, nonprofit, government, other
- Employee size: 1-4, 5-9, 10-19, 20-49, 50-99, 100-249, 250-499, 500-999, 1000+

Scores range from 0-100, where higher scores indicate better business opportunities
based on factors like average salaries, establishment density, and economic momentum.

Use list_states, list_corp_types, and list_emp_sizes to discover valid parameter values.`

// Property fragments shared by several tool schemas.
var (
	stateProp = map[string]interface{}{
		"type":        "string",
		"description": "US State name (e.g., 'California', 'Texas', 'New York')",
	}
	corpTypeProp = map[string]interface{}{
		"type":        "string",
		"description": "Corporation type: c-corp, s-corp, sole-proprietor, partnership, nonprofit, government, other",
	}
	empSizeProp = map[string]interface{}{
		"type":        "string",
		"description": "Employee size category: 1-4, 5-9, 10-19, 20-49, 50-99, 100-249, 250-499, 500-999, 1000+",
	}
)

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// toolCatalog lists the six tools in the order clients should discover them.
var toolCatalog = []Tool{
	{
		Name: "get_opportunity_score",
		Description: "Get the business opportunity score for a specific state, corporation type, and employee size. " +
			"The score (0-100) represents the relative business opportunity based on average salary levels (40% weight), " +
			"economic momentum/payroll growth (35% weight), and establishment density (25% weight). " +
			"Higher scores indicate more favorable business conditions. Returns the score along with supporting data " +
			"including confidence level, number of establishments, total employees, and average salary.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"state":     stateProp,
				"corp_type": corpTypeProp,
				"emp_size":  empSizeProp,
			},
			"required": []string{"state", "corp_type", "emp_size"},
		},
	},
	{
		Name:        "list_states",
		Description: "List all valid US states available in the dataset. Use these exact values when calling get_opportunity_score.",
		InputSchema: emptySchema(),
	},
	{
		Name:        "list_corp_types",
		Description: "List all valid corporation types. Use these codes when calling get_opportunity_score.",
		InputSchema: emptySchema(),
	},
	{
		Name:        "list_emp_sizes",
		Description: "List all valid employee size categories. Use these codes when calling get_opportunity_score.",
		InputSchema: emptySchema(),
	},
	{
		Name: "compare_states",
		Description: "Compare opportunity scores across multiple states for a given corporation type and employee size. " +
			"Useful for identifying the best locations for a specific business profile.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"states": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of US states to compare (e.g., ['California', 'Texas', 'New York'])",
				},
				"corp_type": corpTypeProp,
				"emp_size":  empSizeProp,
			},
			"required": []string{"states", "corp_type", "emp_size"},
		},
	},
	{
		Name: "top_states",
		Description: "Get the top N states by opportunity score for a specific corporation type and employee size. " +
			"Useful for finding the best locations to establish or expand a business.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"corp_type": corpTypeProp,
				"emp_size":  empSizeProp,
				"n": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Number of top states to return (default: 10)",
				},
			},
			"required": []string{"corp_type", "emp_size"},
		},
	},
}
