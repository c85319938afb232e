package usecases

import "context"

// TableRegistry enumerates the tables whose mutations are recorded.
type TableRegistry interface {
	Tables() []string
}

type ListTrackedTablesResult struct {
	Tables []string
}

// ListTrackedTablesUseCase exposes the registry for operator tooling.
type ListTrackedTablesUseCase struct {
	registry TableRegistry
}

func NewListTrackedTablesUseCase(registry TableRegistry) *ListTrackedTablesUseCase {
	return &ListTrackedTablesUseCase{registry: registry}
}

func (uc *ListTrackedTablesUseCase) Execute(_ context.Context) *ListTrackedTablesResult {
	return &ListTrackedTablesResult{Tables: uc.registry.Tables()}
}
