package techniques

import (
	"context"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/patterns"
)

// Recipe builds prompts, drives one orchestration pattern and formats the
// result for display. Recipes that fan out pass opts to the pattern.
type Recipe func(ctx context.Context, inv llmprovider.Invoker, opts ...patterns.Option) (string, error)

// direct returns a recipe that sends prompt once.
func direct(prompt string) Recipe {
	return func(ctx context.Context, inv llmprovider.Invoker, _ ...patterns.Option) (string, error) {
		return patterns.Direct(ctx, inv, prompt)
	}
}

const zeroShotPrompt = `Summarize this quarterly financial risk report into 5 bullets, plain English:
[PASTE REPORT TEXT HERE]`

const oneShotPrompt = `Example summary style:
- Key risk drivers: liquidity, FX exposure
- Material changes: inventory +12% QoQ
- Action items: hedge EUR, tighten DSO

Now summarize the new report similarly:
[NEW REPORT]`

const fewShotPrompt = `
Task: Classify transaction as FRAUD or OK.

Example 1:
Input: Merchant=ABC Travel, Amount=$4,920, Country=US
Label: OK

Example 2:
Input: Merchant=CryptoX, Amount=$9,990, Country=RU
Label: FRAUD

Predict label for:
Input: Merchant=XYZ GiftCards, Amount=$7,500, Country=Unknown
Label:`

const chainOfThoughtPrompt = `Analyze these ratios and conclude company health.
Think step-by-step (show brief reasoning, then final verdict):

Data:
- Current ratio 1.9
- Debt/Equity 0.6
- Gross margin 42%

Output: Reasoning (brief) -> Verdict
`

const selfConsistencyPrompt = "Given symptoms: fever, rash, joint pain—list top likely diagnoses (3)."

func selfConsistency(ctx context.Context, inv llmprovider.Invoker, opts ...patterns.Option) (string, error) {
	res, err := patterns.Vote(ctx, inv, selfConsistencyPrompt, 3, opts...)
	if err != nil {
		return "", err
	}
	return "=== Self-consistency candidates ===\n" + res.Joined(), nil
}

const reactPlanPrompt = `You can REASON then ACT with tools.
Question: "Is the company's EPS trending up?"
Think: We should fetch EPS.
Act: search_db("EPS trend for ACME")`

func react(ctx context.Context, inv llmprovider.Invoker, _ ...patterns.Option) (string, error) {
	tool, err := llmprovider.GetTool(llmprovider.ToolSearchDB)
	if err != nil {
		return "", err
	}
	res, err := patterns.ToolLoop(ctx, inv, reactPlanPrompt, tool, "EPS trend for ACME", func(out string) string {
		return "Context from tool: " + out + "\nAnswer the original question succinctly."
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Plan:\n%s\n\nTool:\n%s\n\nFinal:\n%s", res.Plan, res.ToolOutput, res.Final), nil
}

func treeOfThought(ctx context.Context, inv llmprovider.Invoker, opts ...patterns.Option) (string, error) {
	res, err := patterns.BranchAndJudge(ctx, inv, []string{"A", "B", "C"},
		func(opt string) string {
			return "Option " + opt + ": pros/cons, risk, return, suitability for moderate-risk investor."
		},
		func(branches []string) string {
			return "Evaluate the following analyses and pick the best for a moderate-risk investor:\n" +
				strings.Join(branches, "\n\n")
		},
		opts...,
	)
	if err != nil {
		return "", err
	}
	return "=== Branches ===\n" + strings.Join(res.Branches, "\n\n") + "\n\n=== Verdict ===\n" + res.Verdict, nil
}

func generatedKnowledge(ctx context.Context, inv llmprovider.Invoker, _ ...patterns.Option) (string, error) {
	res, err := patterns.Chain(ctx, inv,
		"Summarize company ACME: products, markets, risks, last 2 years trends.",
		func(knowledge string) string {
			return "Using this background:\n" + knowledge + "\nNow: Assess ACME’s liquidity risks in 5 bullets."
		})
	if err != nil {
		return "", err
	}
	return "Background:\n" + res.First + "\n\nAssessment:\n" + res.Second, nil
}

var ragDocuments = []string{
	"10-K excerpt: Operating cash flow up 12%, CAPEX stable.",
	"Earnings call: Guidance raised for FY, FX headwinds easing.",
}

var ragPrompt = "Ground your answer ONLY in these docs:\n" + strings.Join(ragDocuments, "\n") +
	"\n\nQuestion: Summarize growth drivers."

const instructionPrompt = `Extract all dollar amounts > $10,000 and return JSON array of numbers only.
Text:
- Purchase: $4,500
- Equipment: $25,000
- Settlement: $180,000
- Fees: $9,900
`

const contextualPrompt = `Context: You are a senior medical reviewer.
Task: Turn these notes into a concise assessment & plan (<=120 words).
Notes: [PASTE CLINICAL NOTES]
`

const rolePrompt = `You are a compliance officer. Identify high-risk clauses in this NDA and explain why in 3 bullets:
[PASTE NDA]
`

const explicitStepsPrompt = `Follow these steps:
1) Read contract text
2) Extract obligations per party
3) List 3 risks with brief rationale
Contract:
[PASTE CONTRACT]
Output format:
- Obligations: {Party A:[], Party B:[]}
- Risks: [..]
`

func multiTurn(ctx context.Context, inv llmprovider.Invoker, _ ...patterns.Option) (string, error) {
	conv := patterns.NewConversation(inv)
	a, err := conv.Send(ctx, "We saw revenue up 12%. Do we have regional breakdown?")
	if err != nil {
		return "", err
	}
	b, err := conv.Send(ctx, "Yes, EMEA led. Summarize next steps.")
	if err != nil {
		return "", err
	}
	return "Turn1:\n" + a + "\n\nTurn2:\n" + b, nil
}

// ratio is one named figure embedded in the program-aided prompt.
type ratio struct {
	name  string
	value float64
}

var programAidedRatios = []ratio{
	{"current", 1.9},
	{"quick", 1.5},
	{"de_ratio", 0.6},
}

func programAidedPrompt() string {
	parts := make([]string, len(programAidedRatios))
	for i, r := range programAidedRatios {
		parts[i] = fmt.Sprintf("'%s': %g", r.name, r.value)
	}
	return "Given ratios = {" + strings.Join(parts, ", ") + "}, provide a concise health assessment (<=80 words)."
}

func leastToMost(ctx context.Context, inv llmprovider.Invoker, _ ...patterns.Option) (string, error) {
	res, err := patterns.Chain(ctx, inv,
		"Compute revenue growth: 120M -> 138M YoY. Give % growth only.",
		func(growth string) string {
			return "Given growth=" + growth + ", discuss sustainability in 4 bullets (drivers, risks, outlook, watchlist)."
		})
	if err != nil {
		return "", err
	}
	return "Easy step:\n" + res.First + "\n\nHard step:\n" + res.Second, nil
}

const metaPrompt = `I need a better prompt to extract ‘change of control’ clauses reliably.
Suggest 3 improved prompts with rationale, and one evaluation metric to compare them.
`

var apeCandidates = []string{
	"Extract change-of-control clauses. Return standardized JSON with clause text and risk level.",
	"Identify change-of-control clauses. Add span indices and a one-line rationale.",
	"Find ALL change-of-control clauses; output CSV fields: start,end,text,risk(score 1-5).",
}

// automaticPromptEngineering grades each candidate prompt. No judge call
// picks a winner; the grades are shown side by side.
func automaticPromptEngineering(ctx context.Context, inv llmprovider.Invoker, opts ...patterns.Option) (string, error) {
	grades, err := patterns.Fanout(ctx, inv, apeCandidates, func(candidate string) string {
		return "Rate this prompt for recall & precision (0-10 each), then give total:\n" + candidate
	}, opts...)
	if err != nil {
		return "", err
	}

	sections := make([]string, len(apeCandidates))
	for i, c := range apeCandidates {
		sections[i] = fmt.Sprintf("%d) %s\nGrade:\n%s", i+1, c, grades[i])
	}
	return "=== Candidates & Grades ===\n" + strings.Join(sections, "\n\n"), nil
}

const multimodalPlaceholder = "[Multimodal placeholder] In a real environment, pass both text + image to a multimodal model.\n" +
	"Prompt: 'Given the attached chest X-ray, list 3 notable findings with caveats.'"

func multimodal(context.Context, llmprovider.Invoker, ...patterns.Option) (string, error) {
	return multimodalPlaceholder, nil
}

const contrastivePrompt = `Compare two treatments (A: ACE inhibitor, B: ARB) for hypertension.
Provide: efficacy, side effects, cost, guideline stance. End with a balanced recommendation.`
