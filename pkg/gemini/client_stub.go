package gemini

import "context"

// StubClient is an in-memory Client for tests. With no canned responses it
// behaves like a failing collaborator: fallback advice, no proposals.
type StubClient struct {
	AdviceResponse   *Advice
	ScheduleResponse []ProposedEvent

	AdviceCalls   []AdviceRequest
	ScheduleCalls []string
}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) StudyAdvice(ctx context.Context, req AdviceRequest) Advice {
	s.AdviceCalls = append(s.AdviceCalls, req)
	if s.AdviceResponse != nil {
		return *s.AdviceResponse
	}
	return FallbackAdvice
}

func (s *StubClient) ParseSchedule(ctx context.Context, text string, existing []ExistingEvent) []ProposedEvent {
	s.ScheduleCalls = append(s.ScheduleCalls, text)
	return s.ScheduleResponse
}

func (s *StubClient) Reset() {
	s.AdviceResponse = nil
	s.ScheduleResponse = nil
	s.AdviceCalls = nil
	s.ScheduleCalls = nil
}
