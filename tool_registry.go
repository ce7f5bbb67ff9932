package llmprovider

import (
	"fmt"
	"sort"
	"sync"
)

// ToolRegistry manages registration of local tools.
// This allows library users to register their own tools beyond the built-in ones.
type ToolRegistry struct {
	tools map[string]ToolDefinition
	mu    sync.RWMutex
}

var (
	globalToolRegistry     *ToolRegistry
	globalToolRegistryOnce sync.Once
)

// NewToolRegistry returns an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]ToolDefinition)}
}

// GetToolRegistry returns the global tool registry (singleton)
func GetToolRegistry() *ToolRegistry {
	globalToolRegistryOnce.Do(func() {
		globalToolRegistry = NewToolRegistry()
		globalToolRegistry.registerBuiltInTools()
	})
	return globalToolRegistry
}

// registerBuiltInTools registers the built-in tools
func (r *ToolRegistry) registerBuiltInTools() {
	_ = r.Register(ToolDefinition{
		Name:        ToolSearchDB,
		Description: "Look up company metrics in the internal financial database",
		Func:        SearchDB,
	})
}

// Register adds a tool definition to the registry
func (r *ToolRegistry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}

	if def.Func == nil {
		return fmt.Errorf("function is required for tool %s", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %s is already registered", def.Name)
	}

	r.tools[def.Name] = def
	return nil
}

// Get retrieves a tool definition by name
func (r *ToolRegistry) Get(name string) (ToolDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.tools[name]
	if !exists {
		return ToolDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	return def, nil
}

// List returns all registered tool names, sorted
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTool is a convenience function that reads from the global registry
func GetTool(name string) (ToolDefinition, error) {
	return GetToolRegistry().Get(name)
}
