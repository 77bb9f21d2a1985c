package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// spellURIScheme prefixes spell resource URIs: spell://{spell_id}.
const spellURIScheme = "spell://"

// SpellSaveInput represents the MCP tool input for saving a spell.
type SpellSaveInput struct {
	Seed        string `json:"seed,omitempty" jsonschema:"seed for reproducible generation; a fresh one is drawn when empty"`
	EffectCount int    `json:"effect_count" jsonschema:"number of effects to generate"`
	Name        string `json:"name,omitempty" jsonschema:"optional display name"`
}

// SpellSaveResult represents the MCP tool output for a saved spell.
type SpellSaveResult struct {
	Record SpellRecordResult `json:"record" jsonschema:"the stored spell record"`
	Spell  SpellResult       `json:"spell" jsonschema:"the generated spell"`
}

// SpellGetInput represents the MCP tool input for fetching a saved spell.
type SpellGetInput struct {
	ID     string `json:"id" jsonschema:"spell record identifier"`
	Verify bool   `json:"verify,omitempty" jsonschema:"regenerate the spell and check its fingerprint"`
}

// SpellGetResult represents the MCP tool output for a saved spell.
type SpellGetResult struct {
	Record   SpellRecordResult `json:"record" jsonschema:"the stored spell record"`
	Spell    SpellResult       `json:"spell" jsonschema:"the regenerated spell"`
	Verified bool              `json:"verified" jsonschema:"whether the fingerprint was checked"`
}

// SpellListInput represents the MCP tool input for listing saved spells.
type SpellListInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum spells to return"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Target    string `json:"target,omitempty" jsonschema:"only spells whose first effect has this target"`
}

// SpellListResult represents the MCP tool output for a page of saved spells.
type SpellListResult struct {
	Spells        []SpellRecordResult `json:"spells" jsonschema:"saved spells, oldest first"`
	NextPageToken string              `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// SpellSaveTool defines the MCP tool schema for saving spells.
func SpellSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_spell",
		Description: "Generates a spell and stores it in the spellbook",
	}
}

// SpellGetTool defines the MCP tool schema for fetching saved spells.
func SpellGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_spell",
		Description: "Fetches a saved spell, optionally verifying it still regenerates identically",
	}
}

// SpellListTool defines the MCP tool schema for listing saved spells.
func SpellListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_spells",
		Description: "Lists saved spells, oldest first",
	}
}

// SpellResourceTemplate defines the readable spell resource.
func SpellResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "spell",
		Title:       "Spell",
		Description: "A saved spell and its effects. URI format: spell://{spell_id}",
		MIMEType:    "application/json",
		URITemplate: spellURIScheme + "{spell_id}",
	}
}

// SpellSaveHandler saves a spell through the spellbook service.
func SpellSaveHandler(client spellbookv1.SpellbookServiceClient) mcp.ToolHandlerFor[SpellSaveInput, SpellSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellSaveInput) (*mcp.CallToolResult, SpellSaveResult, error) {
		if client == nil {
			return nil, SpellSaveResult{}, fmt.Errorf("spellbook client is not configured")
		}
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.GenerateSpell(runCtx, &spellbookv1.GenerateSpellRequest{
			Seed:        input.Seed,
			EffectCount: int32(input.EffectCount),
			Save:        true,
			Name:        strings.TrimSpace(input.Name),
		})
		if err != nil {
			return nil, SpellSaveResult{}, fmt.Errorf("save spell failed: %w", err)
		}
		if response == nil || response.GetRecord() == nil {
			return nil, SpellSaveResult{}, fmt.Errorf("save spell response is missing")
		}
		return nil, SpellSaveResult{
			Record: spellRecordResultFromProto(response.GetRecord()),
			Spell:  spellResultFromSnapshot(response.GetSpell(), response.Fingerprint),
		}, nil
	}
}

// SpellGetHandler fetches a saved spell through the spellbook service.
func SpellGetHandler(client spellbookv1.SpellbookServiceClient) mcp.ToolHandlerFor[SpellGetInput, SpellGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellGetInput) (*mcp.CallToolResult, SpellGetResult, error) {
		result, err := getSpell(ctx, client, input.ID, input.Verify)
		if err != nil {
			return nil, SpellGetResult{}, err
		}
		return nil, result, nil
	}
}

// SpellListHandler lists saved spells through the spellbook service.
func SpellListHandler(client spellbookv1.SpellbookServiceClient) mcp.ToolHandlerFor[SpellListInput, SpellListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellListInput) (*mcp.CallToolResult, SpellListResult, error) {
		if client == nil {
			return nil, SpellListResult{}, fmt.Errorf("spellbook client is not configured")
		}
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.ListSpells(runCtx, &spellbookv1.ListSpellsRequest{
			PageSize:  int32(input.PageSize),
			PageToken: strings.TrimSpace(input.PageToken),
			Target:    strings.TrimSpace(input.Target),
		})
		if err != nil {
			return nil, SpellListResult{}, fmt.Errorf("list spells failed: %w", err)
		}
		if response == nil {
			return nil, SpellListResult{}, fmt.Errorf("list spells response is missing")
		}

		result := SpellListResult{
			Spells:        make([]SpellRecordResult, 0, len(response.GetSpells())),
			NextPageToken: response.GetNextPageToken(),
		}
		for _, record := range response.GetSpells() {
			result.Spells = append(result.Spells, spellRecordResultFromProto(record))
		}
		return nil, result, nil
	}
}

// SpellResourceHandler returns a saved spell as a readable resource.
func SpellResourceHandler(client spellbookv1.SpellbookServiceClient) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("spell ID is required; use URI format spell://{spell_id}")
		}
		uri := req.Params.URI
		spellID, err := parseSpellIDFromURI(uri)
		if err != nil {
			return nil, err
		}

		result, err := getSpell(ctx, client, spellID, false)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal spell: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func getSpell(ctx context.Context, client spellbookv1.SpellbookServiceClient, spellID string, verify bool) (SpellGetResult, error) {
	if client == nil {
		return SpellGetResult{}, fmt.Errorf("spellbook client is not configured")
	}
	spellID = strings.TrimSpace(spellID)
	if spellID == "" {
		return SpellGetResult{}, fmt.Errorf("spell id is required")
	}
	runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
	defer cancel()

	response, err := client.GetSpell(runCtx, &spellbookv1.GetSpellRequest{Id: spellID, Verify: verify})
	if err != nil {
		return SpellGetResult{}, fmt.Errorf("get spell failed: %w", err)
	}
	if response == nil || response.GetRecord() == nil {
		return SpellGetResult{}, fmt.Errorf("get spell response is missing")
	}
	record := response.GetRecord()
	return SpellGetResult{
		Record:   spellRecordResultFromProto(record),
		Spell:    spellResultFromSnapshot(response.GetSpell(), record.Fingerprint),
		Verified: response.Verified,
	}, nil
}

// parseSpellIDFromURI extracts the spell ID from spell://{spell_id}.
func parseSpellIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, spellURIScheme) {
		return "", fmt.Errorf("URI must start with %q", spellURIScheme)
	}
	spellID := strings.TrimSpace(strings.TrimPrefix(uri, spellURIScheme))
	if spellID == "" || strings.Contains(spellID, "/") {
		return "", fmt.Errorf("spell ID is required in URI %q", uri)
	}
	return spellID, nil
}
