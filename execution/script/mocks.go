package script

import (
	"context"

	"github.com/robbyt/go-tickscript/execution/host"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
	"github.com/stretchr/testify/mock"
)

// MockCompiler is a mock implementation of the Compiler interface.
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) GetMachineType() machineTypes.Type {
	args := m.Called()
	return args.Get(0).(machineTypes.Type)
}

func (m *MockCompiler) StepCall() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCompiler) Generate(main, extensions []string) string {
	args := m.Called(main, extensions)
	return args.String(0)
}

// Compile mocks the Compile method of the Compiler interface.
func (m *MockCompiler) Compile(ctx context.Context, source string) (Unit, error) {
	args := m.Called(ctx, source)
	unit, ok := args.Get(0).(Unit)
	if !ok {
		return nil, args.Error(1)
	}
	return unit, args.Error(1)
}

// MockUnit is a mock implementation of the Unit interface for testing.
type MockUnit struct {
	mock.Mock
}

func (m *MockUnit) GetSource() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUnit) GetMachineType() machineTypes.Type {
	args := m.Called()
	return args.Get(0).(machineTypes.Type)
}

func (m *MockUnit) Run(ctx context.Context, caps host.Capabilities, gate Stepper, args []string) error {
	ret := m.Called(ctx, caps, gate, args)
	return ret.Error(0)
}

// FuncUnit adapts a plain function to the Unit interface.
type FuncUnit struct {
	Source  string
	Machine machineTypes.Type
	Fn      func(ctx context.Context, caps host.Capabilities, gate Stepper, args []string) error
}

func (f *FuncUnit) GetSource() string {
	return f.Source
}

func (f *FuncUnit) GetMachineType() machineTypes.Type {
	return f.Machine
}

func (f *FuncUnit) Run(ctx context.Context, caps host.Capabilities, gate Stepper, args []string) error {
	return f.Fn(ctx, caps, gate, args)
}
