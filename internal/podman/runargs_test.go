package podman

import (
	"reflect"
	"testing"
)

func TestBuildRunArgs(t *testing.T) {
	tests := []struct {
		name string
		spec RunSpec
		want []string
	}{
		{
			name: "minimal spec",
			spec: RunSpec{Name: "web", Image: "docker.io/library/nginx:latest"},
			want: []string{"run", "-d", "--name", "web", "docker.io/library/nginx:latest"},
		},
		{
			name: "full spec",
			spec: RunSpec{
				Name:  "app",
				Image: "registry.example.com/team/app:1.2",
				Env:   []string{"APP_MODE=prod", "DB_HOST=db"},
				Mounts: []Mount{
					{Source: "/srv/data", Destination: "/data", RW: true},
					{Source: "/srv/conf", Destination: "/etc/app", RW: false},
				},
				Ports: []PortMapping{
					{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
					{HostIP: "127.0.0.1", HostPort: 8443, ContainerPort: 443, Protocol: "tcp"},
					{HostPort: 514, ContainerPort: 514, Protocol: "udp"},
				},
				RestartPolicy: "always",
				Labels:        map[string]string{"role": "backend", "env": "prod"},
				Args:          []string{"--verbose"},
			},
			want: []string{
				"run", "-d", "--name", "app",
				"-v", "/srv/data:/data",
				"-v", "/srv/conf:/etc/app:ro",
				"-e", "APP_MODE=prod",
				"-e", "DB_HOST=db",
				"-p", "8080:80",
				"-p", "127.0.0.1:8443:443",
				"-p", "514:514/udp",
				"--restart=always",
				"--label", "env=prod",
				"--label", "role=backend",
				"registry.example.com/team/app:1.2",
				"--verbose",
			},
		},
		{
			name: "runtime-injected env stripped",
			spec: RunSpec{
				Name:  "job",
				Image: "busybox",
				Env: []string{
					"PATH=/usr/bin:/bin",
					"TERM=xterm",
					"HOSTNAME=abc123",
					"container=podman",
					"GODEBUG=x509",
					"XDG_CACHE_HOME=/root/.cache",
					"HOME=/root",
					"KEEP_ME=yes",
				},
			},
			want: []string{"run", "-d", "--name", "job", "-e", "KEEP_ME=yes", "busybox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRunArgs(tt.spec)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildRunArgs mismatch\n got: %v\nwant: %v", got, tt.want)
			}
		})
	}
}

func TestFilterEnvPreservesOrder(t *testing.T) {
	env := []string{"B=2", "A=1", "TERM=vt100", "C=3"}
	got := filterEnv(env)
	want := []string{"B=2", "A=1", "C=3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterEnv mismatch: got %v, want %v", got, want)
	}
}
