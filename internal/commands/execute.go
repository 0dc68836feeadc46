package commands

import "fmt"

type Result struct {
	Message string
	Changed bool
}

type Handlers struct {
	Add     func(ItemArgs) (Result, error)
	Check   func(ItemArgs) (Result, error)
	Uncheck func(ItemArgs) (Result, error)
	Toggle  func(ItemArgs) (Result, error)
	Clear   func() (Result, error)
	Reset   func() (Result, error)
	List    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Item)
	case TypeCheck:
		if handlers.Check == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Check(*cmd.Item)
	case TypeUncheck:
		if handlers.Uncheck == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Uncheck(*cmd.Item)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Item)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	case TypeList:
		if handlers.List == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.List()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
