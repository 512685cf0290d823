package main

import "github.com/nguyenthanhduc0901/clinicdesk/cmd"

func main() {
	cmd.Execute()
}
