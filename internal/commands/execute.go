package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Title  func(TitleArgs) (Result, error)
	Set    func(SetArgs) (Result, error)
	Share  func() (Result, error)
	Submit func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeTitle:
		if handlers.Title == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Title(*cmd.Title)
	case TypeSet:
		if handlers.Set == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Set(*cmd.Set)
	case TypeShare:
		if handlers.Share == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Share()
	case TypeSubmit:
		if handlers.Submit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Submit()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
