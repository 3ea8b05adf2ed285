// Package cliapp bridges declared commands to the external CLI layer.
//
// Bridge turns a command declaration into a cobra command: keyword-style
// parameters become pflag flags (typed from the function's parameter types,
// shorthand and help text from their descriptors), positional parameters
// become validated cobra arguments, and execution goes through the rebound
// callable so defaults apply exactly as in a direct call.
//
// App mirrors the original system's register-and-rebind decorator: declaring
// a command through an App both mounts it on the root cobra command and
// returns the directly invocable rebound function, which still carries the
// back-reference to its declaration.
//
// The core library takes no flags, environment, or files of its own; the
// env fallbacks and the YAML defaults file implemented here are CLI-layer
// conveniences with strictly lower precedence than explicit flags.
package cliapp
