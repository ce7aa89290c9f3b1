package constant

// Prompts for the LLM-backed pipeline collaborators. All of them demand a
// bare JSON object back; pkg/content strips code fences before parsing.

const QuickScanPromptV1 = `You classify a school document for a child's learning app.

Given the document (image attached, or text below), answer with ONE JSON object:
{
  "topic": "short topic, e.g. 'Fractions' or 'French Revolution'",
  "language": "ISO 639-1 code of the document language, e.g. 'en'",
  "confidence": 0.0-1.0,
  "alternatives": [{"topic": "...", "language": "...", "confidence": 0.0-1.0}]
}

Rules:
- "alternatives" holds up to 3 plausible second guesses, best first.
- Base the topic on the dominant subject matter, not the title alone.
- Respond with the JSON object only. No prose, no code fences.`

const TextExtractionPromptV1 = `Extract the full text content of the attached school document.

Rules:
- Preserve reading order, headings and exercise numbering.
- Transcribe tables row by row.
- Do not summarize, translate, or comment.
- Return the plain text only.`

const ConceptExtractionPromptV1 = `You extract learning concepts from a school document for a child.

From the text below, list the distinct concepts a child must master. Answer
with ONE JSON object:
{
  "concepts": [
    {"key": "dotted.lowercase.key", "label": "Human readable label", "difficulty": 0.0-1.0}
  ]
}

Rules:
- At most %d concepts, most central first.
- "key" is stable and hierarchical, e.g. "fractions.addition".
- "difficulty" estimates how hard the concept is for the target grade.
- Respond with the JSON object only. No prose, no code fences.`

const PackGenerationPromptV1 = `You build a learning pack for a child from a school document.

Using the document content and the concept list below, answer with ONE JSON object:
{
  "title": "...",
  "summary": "2-3 sentence child-friendly summary",
  "items": [
    {"concept_key": "...", "heading": "...", "body": "short explanation", "example": "worked example"}
  ]
}

Rules:
- One item per concept, in the given concept order.
- Write for the document's language and an age-appropriate register.
- Respond with the JSON object only. No prose, no code fences.`

const GameGenerationPromptV1 = `You create one "%s" game from a learning pack for a child.

Pack content is below. Answer with ONE JSON object matching this shape:
%s

Rules:
- Ground every question/card/pair in the pack content; invent nothing.
- Keep wording short and age-appropriate, in the pack's language.
- Respond with the JSON object only. No prose, no code fences.`
