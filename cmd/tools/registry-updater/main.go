// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"marketplace-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	default:
		help()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID (e.g., estimate-price)")
	displayName := fs.String("displayName", "", "Display Name (e.g., Estimate Price)")
	description := fs.String("description", "", "Description")
	category := fs.String("category", "matching", "Category")
	taskType := fs.String("taskType", "", "Zeebe task type, defaults to the id")
	version := fs.String("version", "1.0.0", "Version")
	status := fs.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	timeout := fs.String("timeout", "30s", "Job timeout")
	errorCodes := fs.String("errorCodes", "", "Comma separated BPMN error codes")
	fs.Parse(args)

	if *id == "" || *displayName == "" {
		fs.Usage()
		return fmt.Errorf("id and displayName are required for add")
	}
	if *taskType == "" {
		*taskType = *id
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return err
	}
	if _, exists := reg.Find(*taskType); exists {
		return fmt.Errorf("task type %s already registered", *taskType)
	}

	reg.Activities = append(reg.Activities, registry.Activity{
		ID:                   *id,
		DisplayName:          *displayName,
		Description:          *description,
		Category:             *category,
		Version:              *version,
		TaskType:             *taskType,
		ImplementationStatus: *status,
		ErrorCodes:           splitList(*errorCodes),
		Timeout:              *timeout,
		Retries:              3,
	})
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Added activity %s\n", *id)
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID to update")
	field := fs.String("field", "", "Field to update (status, version, description, timeout, retries)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *id == "" || *field == "" {
		fs.Usage()
		return fmt.Errorf("id and field are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return err
	}

	idx := -1
	for i, a := range reg.Activities {
		if a.ID == *id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("activity %s not found", *id)
	}

	a := &reg.Activities[idx]
	switch *field {
	case "status":
		a.ImplementationStatus = *value
	case "version":
		a.Version = *value
	case "description":
		a.Description = *value
	case "timeout":
		a.Timeout = *value
	case "retries":
		n, err := strconv.Atoi(*value)
		if err != nil {
			return fmt.Errorf("retries must be an integer: %w", err)
		}
		a.Retries = n
	default:
		return fmt.Errorf("unsupported field %s", *field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Updated %s.%s\n", *id, *field)
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	fmt.Printf("Registry is valid: %d activities\n", len(reg.Activities))
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return err
	}
	for _, a := range reg.Activities {
		fmt.Printf("%-22s %-10s %-8s %s\n", a.TaskType, a.ImplementationStatus, a.Version, strings.Join(a.ErrorCodes, ","))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func help() {
	fmt.Println("Usage: registry-updater <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  add       Register a new activity")
	fmt.Println("  update    Update a field of an existing activity")
	fmt.Println("  validate  Validate the registry file")
	fmt.Println("  list      List registered task types")
}
