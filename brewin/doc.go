// Package brewin implements an interpreter for Brewin, a small statically
// typed object-oriented language written in parenthesized prefix syntax:
//   - Programs are a sequence of (class NAME [inherits BASE] MEMBER...) forms.
//   - Members are fields, (field TYPE NAME DEFAULT), and methods,
//     (method RETURN-TYPE NAME ((TYPE NAME)...) BODY).
//   - Types are int, bool, string, void (returns only) and class names;
//     null fits any class-typed slot and a subclass fits its ancestors' slots.
//   - Statements are begin, let, set, if, while, call, return, print,
//     inputs and inputi; expressions are literals, names, me, arithmetic,
//     comparison and logical operators, call and new.
//
// Inheritance is modelled as a chain of object slices, one per class. A
// method found in an ancestor slice runs against that slice's fields, while
// me keeps denoting the most derived object so calls through me dispatch
// virtually. Comments beginning with `#` are ignored.
//
// Names of fields, methods, parameters and locals may not be reserved words.
// Execution is bounded by Config.RecursionLimit (1000 frames by default)
// and, when set, Config.StepQuota; a zero quota never stops a program.
package brewin
