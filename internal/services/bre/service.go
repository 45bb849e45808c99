// Package bre drives the risk-assessment step against the upstream
// business-rule engine and folds the outcome into the lead's step 9 data.
package bre

import (
	"context"
	"time"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
)

type Service interface {
	Questions(ctx context.Context, appID string) ([]models.BREQuestion, error)
	Trigger(ctx context.Context, leadID, appID string) (*models.RiskAssessment, error)
	SubmitAnswers(ctx context.Context, leadID, appID string, answers map[string]string) (*models.RiskAssessment, error)
}

type client interface {
	FetchBREQuestions(ctx context.Context, appID string) (*origination.BREQuestionsResponse, error)
	TriggerBRE(ctx context.Context, appID string) (*origination.BREResultResponse, error)
	SubmitBREAnswers(ctx context.Context, appID string, answers map[string]string) (*origination.BREResultResponse, error)
}

type service struct {
	client client
	store  *leadstore.Store
	now    func() time.Time
}

func NewService(c client, store *leadstore.Store) Service {
	if c == nil {
		panic("origination client is required")
	}
	if store == nil {
		panic("lead store is required")
	}
	return &service{client: c, store: store, now: time.Now}
}

func (s *service) Questions(ctx context.Context, appID string) ([]models.BREQuestion, error) {
	resp, err := s.client.FetchBREQuestions(ctx, appID)
	if err != nil {
		return nil, err
	}
	out := make([]models.BREQuestion, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		out = append(out, models.BREQuestion{ID: q.QuestionID, Text: q.Text})
	}
	return out, nil
}

func (s *service) Trigger(ctx context.Context, leadID, appID string) (*models.RiskAssessment, error) {
	resp, err := s.client.TriggerBRE(ctx, appID)
	if err != nil {
		return nil, err
	}
	return s.mergeResult(leadID, nil, resp)
}

func (s *service) SubmitAnswers(ctx context.Context, leadID, appID string, answers map[string]string) (*models.RiskAssessment, error) {
	resp, err := s.client.SubmitBREAnswers(ctx, appID, answers)
	if err != nil {
		return nil, err
	}

	answered := make([]models.BREQuestion, 0, len(answers))
	for id, answer := range answers {
		answered = append(answered, models.BREQuestion{ID: id, Answer: answer})
	}
	return s.mergeResult(leadID, answered, resp)
}

// mergeResult writes the decision into step 9 through the store. Step
// data replaces wholesale under merge, so previously recorded questions
// are carried forward explicitly when this call has none of its own.
func (s *service) mergeResult(leadID string, questions []models.BREQuestion, resp *origination.BREResultResponse) (*models.RiskAssessment, error) {
	if questions == nil {
		for _, l := range s.store.Leads() {
			if (l.ID == leadID || l.AppID == leadID) && l.FormData.Step9 != nil {
				questions = l.FormData.Step9.Questions
				break
			}
		}
	}

	triggeredAt := s.now()
	assessment := models.RiskAssessment{
		Questions:   questions,
		Decision:    resp.Decision,
		TriggeredAt: &triggeredAt,
	}

	lead, err := s.store.UpdateLead(leadID, models.LeadUpdate{
		FormData: &models.FormDataUpdate{Step9: &assessment},
	})
	if err != nil {
		return nil, err
	}
	if lead.FormData.Step9 != nil {
		assessment = *lead.FormData.Step9
	}
	return &assessment, nil
}
