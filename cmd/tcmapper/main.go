// SPDX-License-Identifier: Apache-2.0

// tcmapper turns manual test cases into Katalon Studio scripts.
//
// Usage:
//
//	tcmapper generate <file> [-o script.groovy]
//	tcmapper generate --glob 'cases/**/*.yaml' --out-dir scripts
//	tcmapper generate --sheet cases.xlsx --out-dir scripts
//	tcmapper resolve "click the login button"
//	tcmapper metadata extract <file> -o metadata.xlsx
//	tcmapper scaffold <file> --kind tc -o bundle.zip
//	tcmapper merge|split <sheet> -o out.xlsx
//	tcmapper report <report.html>
//	tcmapper dictionary import|validate <dictionary.yaml>
//	tcmapper serve mcp|http
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
