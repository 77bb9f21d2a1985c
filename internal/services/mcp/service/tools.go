package service

import (
	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/Steffo99/royalspells/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerSpellTools adds the tools that run entirely in process.
func registerSpellTools(server *mcp.Server, seeds domain.SeedFunc) {
	mcp.AddTool(server, domain.SpellGenerateTool(), domain.SpellGenerateHandler(seeds))
	mcp.AddTool(server, domain.FormulaSampleTool(), domain.FormulaSampleHandler(seeds))
}

// registerSpellbookTools adds the tools backed by the spellbook service.
func registerSpellbookTools(server *mcp.Server, client spellbookv1.SpellbookServiceClient) {
	mcp.AddTool(server, domain.SpellSaveTool(), domain.SpellSaveHandler(client))
	mcp.AddTool(server, domain.SpellGetTool(), domain.SpellGetHandler(client))
	mcp.AddTool(server, domain.SpellListTool(), domain.SpellListHandler(client))
}

func registerSpellResources(server *mcp.Server, client spellbookv1.SpellbookServiceClient) {
	server.AddResourceTemplate(domain.SpellResourceTemplate(), domain.SpellResourceHandler(client))
}
