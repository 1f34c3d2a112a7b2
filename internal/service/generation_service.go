package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/pkg/llm"
)

// IGenerationService is the only place prompts meet the model.
type IGenerationService interface {
	DraftDocument(ctx context.Context, company *entity.Company, founders []*entity.Founder, docType entity.DocumentType, title string) (string, error)
	DraftSafe(ctx context.Context, company *entity.Company, investor *entity.Investor) (string, error)
	ValidateDocument(ctx context.Context, company *entity.Company, doc *entity.Document) (*entity.ValidationResult, error)
	Answer(ctx context.Context, question, companyContext string, passages []string, history []llm.Message) (string, error)
	// ExtractEntities returns nil without error when the model output is
	// malformed or incomplete.
	ExtractEntities(ctx context.Context, text string) (*dto.ExtractedEntities, error)
}

type generationService struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerationService(provider llm.LLMProvider, log logger.ILogger) IGenerationService {
	return &generationService{
		provider: provider,
		logger:   log,
	}
}

var validationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"valid": map[string]interface{}{"type": "boolean"},
		"issues": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"severity": map[string]interface{}{"type": "string", "enum": []string{"error", "warning"}},
					"message":  map[string]interface{}{"type": "string"},
				},
				"required": []string{"severity", "message"},
			},
		},
	},
	"required": []string{"valid", "issues"},
}

var extractionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"company": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name":         map[string]interface{}{"type": "string"},
				"jurisdiction": map[string]interface{}{"type": "string", "enum": []string{"delaware", "france"}},
				"description":  map[string]interface{}{"type": "string"},
			},
			"required": []string{"name", "jurisdiction", "description"},
		},
		"founders": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"first_name":        map[string]interface{}{"type": "string"},
					"last_name":         map[string]interface{}{"type": "string"},
					"email":             map[string]interface{}{"type": "string"},
					"role":              map[string]interface{}{"type": "string"},
					"equity_percentage": map[string]interface{}{"type": "number"},
				},
				"required": []string{"first_name", "last_name", "email", "role", "equity_percentage"},
			},
		},
		"investors": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":              map[string]interface{}{"type": "string"},
					"email":             map[string]interface{}{"type": "string"},
					"investment_amount": map[string]interface{}{"type": "number"},
				},
				"required": []string{"name", "email", "investment_amount"},
			},
		},
	},
	"required": []string{"company", "founders", "investors"},
}

// upstream folds the provider's "not configured" error into the app-wide one.
func upstream(err error) error {
	if errors.Is(err, llm.ErrUnavailable) {
		return fmt.Errorf("generation: %w", apperror.ErrUnavailable)
	}
	return err
}

func (s *generationService) DraftDocument(ctx context.Context, company *entity.Company, founders []*entity.Founder, docType entity.DocumentType, title string) (string, error) {
	var sb strings.Builder
	for _, f := range founders {
		sb.WriteString(fmt.Sprintf("- %s (%s), %s, %.2f%%\n", f.FullName(), f.Email, f.Role, f.EquityPercentage))
	}
	if len(founders) == 0 {
		sb.WriteString("- none recorded yet\n")
	}

	prompt := fmt.Sprintf(constant.DraftDocumentPrompt,
		company.Name, company.Jurisdiction, company.Description, sb.String(), docType, title)

	content, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", upstream(err)
	}
	return strings.TrimSpace(content), nil
}

func (s *generationService) DraftSafe(ctx context.Context, company *entity.Company, investor *entity.Investor) (string, error) {
	prompt := fmt.Sprintf(constant.DraftSafePrompt,
		company.Name, company.Jurisdiction, investor.Name, investor.Email, investor.InvestmentAmount)

	content, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", upstream(err)
	}
	return strings.TrimSpace(content), nil
}

func (s *generationService) ValidateDocument(ctx context.Context, company *entity.Company, doc *entity.Document) (*entity.ValidationResult, error) {
	prompt := fmt.Sprintf(constant.ValidateDocumentPrompt, doc.Type, company.Jurisdiction, doc.Content)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0), llm.WithJSONSchema(validationSchema))
	if err != nil {
		return nil, upstream(err)
	}

	var result entity.ValidationResult
	if err := json.Unmarshal([]byte(stripFence(raw)), &result); err != nil {
		s.logger.Warn("GENERATION", "Unreadable validation output", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("validation output is not valid JSON: %w", err)
	}
	if result.Issues == nil {
		result.Issues = []entity.ValidationIssue{}
	}
	return &result, nil
}

func (s *generationService) Answer(ctx context.Context, question, companyContext string, passages []string, history []llm.Message) (string, error) {
	var sb strings.Builder
	sb.WriteString(constant.AssistantSystemPrompt)
	sb.WriteString("\n\nCOMPANY CONTEXT:\n")
	sb.WriteString(companyContext)
	sb.WriteString("\n\nRETRIEVED PASSAGES:\n")
	if len(passages) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, p := range passages {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, p))
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: sb.String()})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: question})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		return "", upstream(err)
	}
	return strings.TrimSpace(reply), nil
}

func (s *generationService) ExtractEntities(ctx context.Context, text string) (*dto.ExtractedEntities, error) {
	prompt := fmt.Sprintf(constant.ExtractEntitiesPrompt, text)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0), llm.WithJSONSchema(extractionSchema))
	if err != nil {
		return nil, upstream(err)
	}

	var out dto.ExtractedEntities
	if err := json.Unmarshal([]byte(stripFence(raw)), &out); err != nil {
		s.logger.Warn("GENERATION", "Malformed extraction output", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	if strings.TrimSpace(out.Company.Name) == "" || !entity.Jurisdiction(out.Company.Jurisdiction).Valid() {
		s.logger.Warn("GENERATION", "Incomplete extraction output", map[string]interface{}{"company": out.Company.Name})
		return nil, nil
	}
	if out.Founders == nil {
		out.Founders = []dto.ExtractedFounder{}
	}
	if out.Investors == nil {
		out.Investors = []dto.ExtractedInvestor{}
	}
	return &out, nil
}

// stripFence removes a ```json fence some models wrap around JSON output.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
