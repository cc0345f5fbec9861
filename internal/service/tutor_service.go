package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/pkg/logger"
	"github.com/samora254/KitabuNew/pkg/monitoring"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// TutorContext carries what Rafiki knows about the student when
// answering.
type TutorContext struct {
	Subject          string
	Grade            string
	CurrentTopic     string
	UserLevel        string
	PreviousMessages []model.ChatMessage
}

type TutorResponse struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type GeneratedFlashcard struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

type AnswerEvaluation struct {
	IsCorrect   bool     `json:"isCorrect"`
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// TutorClient is the Rafiki collaborator contract. GenerateTutorResponse
// deliberately has no error return: chat must degrade to a friendly
// fallback, never a 5xx.
type TutorClient interface {
	GenerateTutorResponse(ctx context.Context, message string, tctx TutorContext) TutorResponse
	GenerateQuizQuestions(ctx context.Context, topic, subject, difficulty string, count int) ([]GeneratedQuestion, error)
	GenerateFlashcards(ctx context.Context, topic, subject string, count int) ([]GeneratedFlashcard, error)
	EvaluateAnswer(ctx context.Context, question, studentAnswer, correctAnswer, subject string) (*AnswerEvaluation, error)
}

type TutorService struct {
	client *openai.Client
	model  string
}

func NewTutorService(cfg config.AIConfig) *TutorService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	m := cfg.Model
	if m == "" {
		m = openai.GPT4o
	}
	return &TutorService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  m,
	}
}

const rafikiSystemPromptFmt = `You are Rafiki, a friendly and knowledgeable AI tutor for Grade 8 Kenyan CBC curriculum students. Your personality is encouraging, patient, and culturally aware. You help students with:

- Mathematics (algebra, geometry, data handling)
- English (reading, writing, speaking, listening)
- Kiswahili (kusoma, kuandika, mazungumzo)
- Science (matter, energy, living things, earth science)
- Social Studies (history, geography, civics)

Key guidelines:
1. Use simple, age-appropriate language for Grade 8 students (ages 13-14)
2. Be encouraging and positive, celebrating small wins
3. Break down complex concepts into manageable steps
4. Use real-world examples relevant to Kenyan context when possible
5. Ask follow-up questions to check understanding
6. Suggest practice activities or study methods
7. Use emojis occasionally to keep the tone friendly
8. If a student is struggling, offer simpler explanations or alternative approaches

Current context:
- Subject: %s
- Current topic: %s
- Student level: %s

Respond as Rafiki would, being helpful, encouraging, and educational.`

var fallbackSuggestions = []string{
	"Try a different question",
	"Check your internet connection",
	"Refresh the page",
}

// GenerateTutorResponse asks the model for a reply plus study
// suggestions. Any upstream failure is absorbed into a fallback so the
// chat transcript always gets an assistant message.
func (s *TutorService) GenerateTutorResponse(ctx context.Context, message string, tctx TutorContext) TutorResponse {
	systemPrompt := fmt.Sprintf(rafikiSystemPromptFmt,
		orDefault(tctx.Subject, "General"),
		orDefault(tctx.CurrentTopic, "Not specified"),
		orDefault(tctx.UserLevel, "Beginner"),
	)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, prev := range tctx.PreviousMessages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    prev.Role,
			Content: prev.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil || len(resp.Choices) == 0 {
		monitoring.TutorRequestCounter.WithLabelValues("chat", "fallback").Inc()
		logger.Log.Warn("tutor response failed, using fallback", zap.Error(err))
		return TutorResponse{
			Message:     "I'm having trouble right now. Please try asking your question again in a moment! 😊",
			Suggestions: fallbackSuggestions,
		}
	}
	monitoring.TutorRequestCounter.WithLabelValues("chat", "ok").Inc()

	tutorMessage := resp.Choices[0].Message.Content
	if tutorMessage == "" {
		tutorMessage = "I'm sorry, I couldn't process that. Could you please try again?"
	}

	return TutorResponse{
		Message:     tutorMessage,
		Suggestions: s.generateStudySuggestions(ctx, message, tctx),
	}
}

func (s *TutorService) generateStudySuggestions(ctx context.Context, message string, tctx TutorContext) []string {
	prompt := fmt.Sprintf(`Based on this student question: %q in %s (topic: %s), suggest 3 specific study activities that would help them learn better. Keep suggestions practical and actionable for a Grade 8 student. Return JSON: {"suggestions": ["...", "...", "..."]}`,
		message,
		orDefault(tctx.Subject, "general"),
		orDefault(tctx.CurrentTopic, "unknown"),
	)

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := s.completeJSON(ctx, prompt, 200, &parsed); err != nil || len(parsed.Suggestions) == 0 {
		return []string{
			"Practice with flashcards",
			"Try a related quiz",
			"Ask for more examples",
		}
	}
	return parsed.Suggestions
}

func (s *TutorService) GenerateQuizQuestions(ctx context.Context, topic, subject, difficulty string, count int) ([]GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Generate %d multiple-choice quiz questions for Grade 8 CBC curriculum.

Subject: %s
Topic: %s
Difficulty: %s

Each question should have:
- A clear, age-appropriate question
- 4 multiple choice options
- The correct answer
- A brief explanation

Return JSON: {"questions": [{"question", "options" (array), "correctAnswer", "explanation"}]}`,
		count, subject, topic, difficulty)

	var parsed struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := s.completeJSON(ctx, prompt, 1500, &parsed); err != nil {
		return nil, err
	}
	return parsed.Questions, nil
}

func (s *TutorService) GenerateFlashcards(ctx context.Context, topic, subject string, count int) ([]GeneratedFlashcard, error) {
	prompt := fmt.Sprintf(`Generate %d educational flashcards for Grade 8 CBC curriculum.

Subject: %s
Topic: %s

Each flashcard should have:
- A clear question or prompt
- A concise answer
- A brief explanation or learning tip

Return JSON: {"flashcards": [{"question", "answer", "explanation"}]}`,
		count, subject, topic)

	var parsed struct {
		Flashcards []GeneratedFlashcard `json:"flashcards"`
	}
	if err := s.completeJSON(ctx, prompt, 1500, &parsed); err != nil {
		return nil, err
	}
	return parsed.Flashcards, nil
}

func (s *TutorService) EvaluateAnswer(ctx context.Context, question, studentAnswer, correctAnswer, subject string) (*AnswerEvaluation, error) {
	prompt := fmt.Sprintf(`Evaluate this Grade 8 student's answer:

Question: %s
Student Answer: %s
Correct Answer: %s
Subject: %s

Provide evaluation as JSON with:
- isCorrect (boolean)
- score (0-100)
- feedback (encouraging message)
- suggestions (array of 2-3 learning tips)

Be encouraging and constructive in feedback.`,
		question, studentAnswer, correctAnswer, subject)

	var parsed AnswerEvaluation
	if err := s.completeJSON(ctx, prompt, 400, &parsed); err != nil {
		return &AnswerEvaluation{
			Feedback:    "I couldn't evaluate your answer right now. Please try again!",
			Suggestions: []string{"Try again", "Ask for help"},
		}, nil
	}
	if parsed.Feedback == "" {
		parsed.Feedback = "Keep practicing!"
	}
	if len(parsed.Suggestions) == 0 {
		parsed.Suggestions = []string{"Review the concept", "Try similar problems"}
	}
	return &parsed, nil
}

// completeJSON runs a single-turn JSON-mode completion and unmarshals
// the result.
func (s *TutorService) completeJSON(ctx context.Context, prompt string, maxTokens int, out interface{}) error {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		monitoring.TutorRequestCounter.WithLabelValues("json", "error").Inc()
		return err
	}
	if len(resp.Choices) == 0 {
		monitoring.TutorRequestCounter.WithLabelValues("json", "error").Inc()
		return fmt.Errorf("tutor returned no choices")
	}
	monitoring.TutorRequestCounter.WithLabelValues("json", "ok").Inc()
	return json.Unmarshal([]byte(strings.TrimSpace(resp.Choices[0].Message.Content)), out)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
