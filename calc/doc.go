// Package calc contains the clients of a numeric task runner: a small set of
// math operations, the line oriented result log ("<op> <arg1> [<arg2>] = <result>"),
// a Submitter which drives a runner and writes the log, and a verifier which
// recomputes every logged line.
package calc
