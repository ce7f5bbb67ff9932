// Package techniques holds the catalog of twenty prompting techniques and
// the dispatch boundary that runs them.
package techniques

import (
	"fmt"

	"github.com/haowjy/meridian-playbook/patterns"
)

// MaxID is the highest technique id.
const MaxID = 20

// Entry is one catalog row.
type Entry struct {
	ID      int
	Name    string
	Pattern patterns.Kind
	Recipe  Recipe
}

var catalog = [MaxID]Entry{
	{ID: 1, Name: "Zero-shot", Pattern: patterns.KindDirect, Recipe: direct(zeroShotPrompt)},
	{ID: 2, Name: "One-shot", Pattern: patterns.KindDirect, Recipe: direct(oneShotPrompt)},
	{ID: 3, Name: "Few-shot", Pattern: patterns.KindDirect, Recipe: direct(fewShotPrompt)},
	{ID: 4, Name: "Chain-of-Thought", Pattern: patterns.KindDirect, Recipe: direct(chainOfThoughtPrompt)},
	{ID: 5, Name: "Self-Consistency", Pattern: patterns.KindVote, Recipe: selfConsistency},
	{ID: 6, Name: "ReAct", Pattern: patterns.KindToolLoop, Recipe: react},
	{ID: 7, Name: "Tree-of-Thought", Pattern: patterns.KindBranchJudge, Recipe: treeOfThought},
	{ID: 8, Name: "Generated Knowledge", Pattern: patterns.KindChain, Recipe: generatedKnowledge},
	{ID: 9, Name: "RAG (stub)", Pattern: patterns.KindDirect, Recipe: direct(ragPrompt)},
	{ID: 10, Name: "Instruction", Pattern: patterns.KindDirect, Recipe: direct(instructionPrompt)},
	{ID: 11, Name: "Contextual", Pattern: patterns.KindDirect, Recipe: direct(contextualPrompt)},
	{ID: 12, Name: "Role", Pattern: patterns.KindDirect, Recipe: direct(rolePrompt)},
	{ID: 13, Name: "CoT (Explicit Steps)", Pattern: patterns.KindDirect, Recipe: direct(explicitStepsPrompt)},
	{ID: 14, Name: "Multi-turn", Pattern: patterns.KindMultiTurn, Recipe: multiTurn},
	{ID: 15, Name: "Program-Aided", Pattern: patterns.KindDirect, Recipe: direct(programAidedPrompt())},
	{ID: 16, Name: "Least-to-Most", Pattern: patterns.KindChain, Recipe: leastToMost},
	{ID: 17, Name: "Meta", Pattern: patterns.KindDirect, Recipe: direct(metaPrompt)},
	{ID: 18, Name: "Automatic Prompt Engineering (stub)", Pattern: patterns.KindBranchJudge, Recipe: automaticPromptEngineering},
	{ID: 19, Name: "Multimodal (stub)", Pattern: patterns.KindStatic, Recipe: multimodal},
	{ID: 20, Name: "Contrastive", Pattern: patterns.KindDirect, Recipe: direct(contrastivePrompt)},
}

func init() {
	for i, e := range catalog {
		if e.ID != i+1 || e.Name == "" || e.Recipe == nil {
			panic(fmt.Sprintf("techniques: malformed catalog entry at index %d: id=%d", i, e.ID))
		}
	}
}

// Lookup returns the entry for id. Ids outside 1..MaxID fail with
// *llmprovider.UnknownTechniqueError.
func Lookup(id int) (Entry, error) {
	if id < 1 || id > MaxID {
		return Entry{}, unknownTechnique(id, "")
	}
	return catalog[id-1], nil
}

// All returns every entry in ascending id order.
func All() []Entry {
	out := make([]Entry, MaxID)
	copy(out, catalog[:])
	return out
}
