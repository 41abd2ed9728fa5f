package main

import "fmt"

func classEmptyListMessage() string {
	return "No classes. Add one with: classwork class add <name>"
}

func assignmentEmptyListMessage(class string, includeAll bool) string {
	if includeAll {
		return fmt.Sprintf("No assignments in %s.", class)
	}
	return fmt.Sprintf("No current assignments in %s. Use --all to include older ones.", class)
}

func agendaEmptyListMessage() string {
	return "Nothing due."
}

func scriptsEmptyListMessage(dir string) string {
	if dir == "" {
		return "Generator scripts are disabled."
	}
	return fmt.Sprintf("No assignments generated by scripts in %s.", dir)
}
