// Command calcverify checks result logs written by calcserver.
//
//	calcverify Task1.txt Task2.txt Task3.txt
package main

import (
	"fmt"
	"io"
	"os"

	perrors "github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/huangjunwen/taskserver/calc"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s FILE...\n", os.Args[0])
	}
	pflag.Parse()
	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	ok := true
	for _, file := range pflag.Args() {
		passed, err := verify(file, os.Stdout, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
		}
		if !passed {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func verify(file string, stdout, stderr io.Writer) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		return false, perrors.Wrap(err, "open result log")
	}
	defer f.Close()

	report, err := calc.Verify(f)
	if err != nil {
		return false, err
	}

	if report.OK() {
		fmt.Fprintf(stdout, "%d tests passed from file %s.\n", report.Total, file)
		return true, nil
	}
	for _, m := range report.Mismatches {
		fmt.Fprintf(stderr, "Test failed at line %d: %s (%v)\n", m.Line, m.Text, m.Err)
	}
	fmt.Fprintln(stderr, "Fail.")
	return false, nil
}
