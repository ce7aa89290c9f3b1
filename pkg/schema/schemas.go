package schema

// Structural schemas for generated content. The generator collaborators
// return loose JSON objects; these structs are what a payload must decode
// into before it is persisted.

// Schema references, passed by the stages to Validate.
const (
	RefLearningPack       = "learning_pack"
	RefGameFlashcards     = "game.flashcards"
	RefGameQuiz           = "game.quiz"
	RefGameMatching       = "game.matching"
	RefGameTrueFalse      = "game.true_false"
	RefGameFillBlank      = "game.fill_blank"
	RefGameOrdering       = "game.ordering"
	RefGameMultipleSelect = "game.multiple_select"
	RefGameShortAnswer    = "game.short_answer"
)

type PackItem struct {
	ConceptKey string `json:"concept_key" validate:"required"`
	Heading    string `json:"heading" validate:"required"`
	Body       string `json:"body" validate:"required"`
	Example    string `json:"example"`
}

type LearningPackContent struct {
	Title   string     `json:"title" validate:"required"`
	Summary string     `json:"summary" validate:"required"`
	Items   []PackItem `json:"items" validate:"required,min=1,dive"`
}

type Flashcard struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

type FlashcardsPayload struct {
	Cards []Flashcard `json:"cards" validate:"required,min=1,dive"`
}

type QuizQuestion struct {
	Question    string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"required,min=2,dive,required"`
	AnswerIndex int      `json:"answer_index" validate:"gte=0"`
}

type QuizPayload struct {
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

type MatchingPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

type MatchingPayload struct {
	Pairs []MatchingPair `json:"pairs" validate:"required,min=2,dive"`
}

type TrueFalseStatement struct {
	Statement string `json:"statement" validate:"required"`
	IsTrue    bool   `json:"is_true"`
}

type TrueFalsePayload struct {
	Statements []TrueFalseStatement `json:"statements" validate:"required,min=1,dive"`
}

type FillBlankItem struct {
	// Sentence contains a ___ placeholder for the blank.
	Sentence string `json:"sentence" validate:"required,contains=___"`
	Answer   string `json:"answer" validate:"required"`
}

type FillBlankPayload struct {
	Items []FillBlankItem `json:"items" validate:"required,min=1,dive"`
}

type OrderingPayload struct {
	Prompt string   `json:"prompt" validate:"required"`
	Steps  []string `json:"steps" validate:"required,min=2,dive,required"`
}

type MultipleSelectQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=3,dive,required"`
	AnswerIndexes []int    `json:"answer_indexes" validate:"required,min=1,dive,gte=0"`
}

type MultipleSelectPayload struct {
	Questions []MultipleSelectQuestion `json:"questions" validate:"required,min=1,dive"`
}

type ShortAnswerItem struct {
	Question        string   `json:"question" validate:"required"`
	AcceptedAnswers []string `json:"accepted_answers" validate:"required,min=1,dive,required"`
}

type ShortAnswerPayload struct {
	Items []ShortAnswerItem `json:"items" validate:"required,min=1,dive"`
}
