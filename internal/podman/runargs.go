package podman

import (
	"fmt"
	"sort"
	"strings"
)

// runtimeInjectedEnv lists variable prefixes podman sets on every
// container. Carrying them into the recreated container would pin
// stale values, so they are stripped from the captured environment.
var runtimeInjectedEnv = []string{
	"PATH=",
	"TERM=",
	"HOSTNAME=",
	"container=",
	"GODEBUG=",
	"XDG_CACHE_HOME=",
	"HOME=",
}

// BuildRunArgs translates a RunSpec into the argv for `podman run -d`.
func BuildRunArgs(spec RunSpec) []string {
	args := []string{"run", "-d", "--name", spec.Name}

	for _, mount := range spec.Mounts {
		volume := mount.Source + ":" + mount.Destination
		if !mount.RW {
			volume += ":ro"
		}
		args = append(args, "-v", volume)
	}

	for _, env := range filterEnv(spec.Env) {
		args = append(args, "-e", env)
	}

	for _, port := range spec.Ports {
		args = append(args, "-p", formatPort(port))
	}

	if spec.RestartPolicy != "" {
		args = append(args, "--restart="+spec.RestartPolicy)
	}

	for _, label := range sortedLabels(spec.Labels) {
		args = append(args, "--label", label)
	}

	args = append(args, spec.Image)
	args = append(args, spec.Args...)

	return args
}

// filterEnv drops runtime-injected variables, preserving order of the rest
func filterEnv(env []string) []string {
	var result []string
	for _, e := range env {
		injected := false
		for _, prefix := range runtimeInjectedEnv {
			if strings.HasPrefix(e, prefix) {
				injected = true
				break
			}
		}
		if !injected {
			result = append(result, e)
		}
	}
	return result
}

func formatPort(port PortMapping) string {
	var b strings.Builder
	if port.HostIP != "" {
		fmt.Fprintf(&b, "%s:", port.HostIP)
	}
	fmt.Fprintf(&b, "%d:%d", port.HostPort, port.ContainerPort)
	if port.Protocol != "" && port.Protocol != "tcp" {
		fmt.Fprintf(&b, "/%s", port.Protocol)
	}
	return b.String()
}

func sortedLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	result := make([]string, 0, len(labels))
	for key, value := range labels {
		result = append(result, key+"="+value)
	}
	sort.Strings(result)
	return result
}
