package solve

// DefaultSystemPrompt asks for a JSON-only reply with answer, confidence and rationale.
const DefaultSystemPrompt = "You are a visual problem solver. The user sends a screenshot. " +
	"Identify any question, problem, or task visible on screen and provide the answer. " +
	"Respond ONLY with valid JSON: " +
	`{"answer": "<concise answer>", "confidence": <0.0-1.0>, "rationale": "<one sentence explanation>"}`

// PromptName is the file stem looked up under PROMPT_DIR.
const PromptName = "solve"
