// Copyright 2023 Skiff Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import "strings"

// Function is a SQL function that can be applied in a query. Calling it binds
// argument expressions and returns the expression for the call site.
type Function interface {
	// Call invokes the function with the given arguments.
	Call(args ...Expression) (Expression, error)
	// isFunction will restrict implementations of Function
	isFunction()
}

type (
	// Function0 is a function with 0 arguments.
	Function0 func() Expression
	// Function1 is a function with 1 argument.
	Function1 func(e Expression) Expression
	// Function2 is a function with 2 arguments.
	Function2 func(e1, e2 Expression) Expression
	// Function3 is a function with 3 arguments.
	Function3 func(e1, e2, e3 Expression) Expression
	// FunctionN is a function with a variable number of arguments. This
	// function is expected to return ErrInvalidArgumentNumber if the arity
	// does not match, since the check has to be done in the implementation.
	FunctionN func(args ...Expression) (Expression, error)
)

// Call implements the Function interface.
func (fn Function0) Call(args ...Expression) (Expression, error) {
	if len(args) != 0 {
		return nil, ErrInvalidArgumentNumber.New(0, len(args))
	}

	return fn(), nil
}

// Call implements the Function interface.
func (fn Function1) Call(args ...Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, ErrInvalidArgumentNumber.New(1, len(args))
	}

	return fn(args[0]), nil
}

// Call implements the Function interface.
func (fn Function2) Call(args ...Expression) (Expression, error) {
	if len(args) != 2 {
		return nil, ErrInvalidArgumentNumber.New(2, len(args))
	}

	return fn(args[0], args[1]), nil
}

// Call implements the Function interface.
func (fn Function3) Call(args ...Expression) (Expression, error) {
	if len(args) != 3 {
		return nil, ErrInvalidArgumentNumber.New(3, len(args))
	}

	return fn(args[0], args[1], args[2]), nil
}

// Call implements the Function interface.
func (fn FunctionN) Call(args ...Expression) (Expression, error) {
	return fn(args...)
}

func (Function0) isFunction() {}
func (Function1) isFunction() {}
func (Function2) isFunction() {}
func (Function3) isFunction() {}
func (FunctionN) isFunction() {}

// Functions is a map of functions identified by their name.
type Functions map[string]Function

// FunctionRegistry is used to register functions. It is used both for builtin
// and user defined functions. Names are case insensitive.
type FunctionRegistry map[string]Function

// NewFunctionRegistry creates a new FunctionRegistry.
func NewFunctionRegistry() FunctionRegistry {
	return make(FunctionRegistry)
}

// Register registers a function with the given name. It fails if the name is
// already taken.
func (r FunctionRegistry) Register(name string, fn Function) error {
	name = strings.ToLower(name)
	if _, ok := r[name]; ok {
		return ErrFunctionAlreadyRegistered.New(name)
	}

	r[name] = fn
	return nil
}

// RegisterMany registers a map of functions. It fails if any of the names is
// already taken.
func (r FunctionRegistry) RegisterMany(funcs Functions) error {
	for name, fn := range funcs {
		if err := r.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers a function with the given name and panics if the
// name is already taken.
func (r FunctionRegistry) MustRegister(name string, fn Function) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Function returns the function with the given name.
func (r FunctionRegistry) Function(name string) (Function, error) {
	if fn, ok := r[strings.ToLower(name)]; ok {
		return fn, nil
	}

	return nil, ErrFunctionNotFound.New(name)
}
