package assistant

import "fmt"

// langRegister holds the response-register wording for one language flag.
// The exact register wording is a product decision: it lives in data here, not
// in the engine logic.
type langRegister struct {
	answerDirective string // strict mode directive
	toolDirective   string // suffix for tool prompts, e.g. "in English"
	hybridWithDocs  string // fmt template: doc context, question
	hybridNoDocs    string // fmt template: question
	apology         string // fmt template: truncated error
}

// registers maps language flags to their register. "en" is the default formal
// register; "hi" is the informal roman-Hindi register.
var registers = map[string]langRegister{
	"en": {
		answerDirective: "Answer in clear English",
		toolDirective:   "in English",
		hybridWithDocs: `You are a helpful AI assistant providing comprehensive answers.

IMPORTANT INSTRUCTIONS:
- I have some uploaded documents (shown below)
- Use information from documents PLUS your general knowledge
- If documents don't have complete info, fill in with general knowledge
- NEVER say "not found" - always provide a helpful answer

UPLOADED DOCUMENTS:
%s

STUDENT'S QUESTION: %s

YOUR COMPREHENSIVE ANSWER:

Format (if documents are relevant):
From Uploaded Documents:
[Information found in the documents]

Additional Information (General Knowledge):
[Extra helpful details to complete the answer]

---
Format (if documents don't have the info):
Answer from General Knowledge:
[Complete answer with examples and explanations]

Note: Specific information wasn't in the documents, but I'm providing a comprehensive answer from general knowledge.

Provide your detailed answer:`,
		hybridNoDocs: `You are a helpful AI study assistant.

No documents are uploaded, but that's okay!

QUESTION: %s

Provide a detailed, helpful answer with:
- Clear explanations
- Examples where relevant
- Step-by-step for complex topics
- Friendly, educational tone

Answer:`,
		apology: "Error occurred: %s",
	},
	"hi": {
		answerDirective: "Answer in Roman Hinglish (Hindi words in English letters)",
		toolDirective:   "in Roman Hinglish",
		hybridWithDocs: `You are a helpful AI assistant. Answer in ROMAN HINGLISH (Hindi words in English).

IMPORTANT:
- Main ne kuch documents upload kiye hain (niche diye hue hain)
- Tum documents ka info use karo PLUS apni general knowledge bhi add karo
- Agar documents mein poori info nahi hai, to baaki general knowledge se complete karo
- Kabhi "not found" mat kehna, hamesha helpful answer do

UPLOADED DOCUMENTS:
%s

STUDENT KA QUESTION: %s

TUMHARA COMPLETE ANSWER (Roman Hinglish mein):

Format (agar documents relevant hain):
Documents mein kya hai:
[Jo documents mein mila]

Aur bhi info (General Knowledge):
[Extra helpful information jo documents mein nahi tha]

---
Format (agar documents mein nahi mila):
General Knowledge se Answer:
[Complete answer with examples and explanations]

Note: Documents mein specific info nahi mili, lekin main general knowledge se explain kar raha hoon.

Ab answer do (friendly aur detailed):`,
		hybridNoDocs: `You are a helpful AI study assistant. Answer in ROMAN HINGLISH.

Koi documents upload nahi hain, lekin koi baat nahi!

QUESTION: %s

Ek detailed aur helpful answer do Roman Hinglish mein:
- Clear explanation
- Examples agar possible ho
- Step-by-step agar complex topic hai
- Friendly tone rakho

Answer:`,
		apology: "Error aaya: %s\n\nKoi baat nahi, question phir se poocho!",
	},
}

// registerFor returns the register for lang, falling back to the default
// English register for unknown flags. The register choice changes wording
// only, never behavior.
func registerFor(lang string) langRegister {
	if reg, ok := registers[lang]; ok {
		return reg
	}
	return registers["en"]
}

// summaryStyles enumerates the summary prompt templates by style name.
// Unknown style names are rejected at call time, never silently defaulted.
var summaryStyles = map[string]string{
	"brief":      "Write a brief summary (150-200 words) %s",
	"detailed":   "Write a comprehensive summary %s",
	"bullets":    "Write a bullet-point summary %s",
	"cheatsheet": "Create a quick-reference cheat sheet %s",
}

// noteStyles enumerates the study-note prompt templates by style name.
var noteStyles = map[string]string{
	"detailed":   "Create comprehensive study notes %s with headings, explanations, and examples",
	"revision":   "Create concise revision notes %s for quick review",
	"cheatsheet": "Create an exam cheat sheet %s with key facts and formulas",
}

// analysisStyles enumerates the content-analysis prompt leads by analysis name.
var analysisStyles = map[string]string{
	"sentiment":   "Analyze the sentiment, tone, and emotional content:",
	"topics":      "Identify main topics and themes:",
	"readability": "Assess readability level and target audience:",
}

// styleFor looks up name in styles, rejecting unknown names.
func styleFor(styles map[string]string, kind, name string) (string, error) {
	tpl, ok := styles[name]
	if !ok {
		return "", fmt.Errorf("unknown %s style: %q", kind, name)
	}
	return tpl, nil
}
