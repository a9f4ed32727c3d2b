package podman

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestListContainersFiltersRunning(t *testing.T) {
	psOutput := `[
		{"Id": "aaa111", "Image": "docker.io/library/nginx:latest", "State": "running", "Status": "Up 2 hours"},
		{"Id": "bbb222", "Image": "docker.io/library/redis:7", "State": "exited", "Status": "Exited (0) 3 hours ago"},
		{"ID": "ccc333", "Image": "docker.io/library/postgres:14", "Status": "Up 5 minutes"}
	]`

	client, _ := newFakeClient(map[string]fakeResponse{
		"ps --format json": {out: []byte(psOutput)},
	})

	containers, err := client.ListContainers(context.Background())
	if err != nil {
		t.Fatalf("ListContainers returned error: %v", err)
	}

	if len(containers) != 2 {
		t.Fatalf("Expected 2 running containers, got %d", len(containers))
	}
	if containers[0].ID != "aaa111" || containers[1].ID != "ccc333" {
		t.Errorf("Unexpected container IDs: %s, %s", containers[0].ID, containers[1].ID)
	}
}

func TestListContainersCommandFailure(t *testing.T) {
	client, _ := newFakeClient(map[string]fakeResponse{
		"ps --format json": {err: &RuntimeError{Op: "ps", ExitCode: 125, Stderr: "cannot connect"}},
	})

	_, err := client.ListContainers(context.Background())
	if err == nil {
		t.Fatal("Expected error from failing ps")
	}

	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("Expected *RuntimeError in chain, got %v", err)
	}
	if runtimeErr.ExitCode != 125 {
		t.Errorf("Expected exit code 125, got %d", runtimeErr.ExitCode)
	}
}

const inspectListPorts = `[{
	"Id": "aaa111",
	"Name": "web",
	"Image": "sha256:0001112223334445556667778889990001112223334445556667778889990001",
	"ImageName": "docker.io/library/nginx:latest",
	"Args": ["nginx", "-g", "daemon off;"],
	"Config": {
		"Image": "docker.io/library/nginx:latest",
		"Env": ["PATH=/usr/bin", "APP_MODE=prod"],
		"Labels": {"role": "frontend"}
	},
	"HostConfig": {
		"RestartPolicy": {"Name": "always"}
	},
	"Mounts": [
		{"Source": "/srv/www", "Destination": "/usr/share/nginx/html", "RW": true}
	],
	"NetworkSettings": {
		"Ports": [
			{"hostIP": "", "hostPort": 8080, "containerPort": 80, "protocol": "tcp"}
		]
	}
}]`

func TestInspectContainer(t *testing.T) {
	client, _ := newFakeClient(map[string]fakeResponse{
		"inspect --format json --type container aaa111": {out: []byte(inspectListPorts)},
	})

	details, err := client.InspectContainer(context.Background(), "aaa111")
	if err != nil {
		t.Fatalf("InspectContainer returned error: %v", err)
	}

	if details.Name != "web" {
		t.Errorf("Expected name web, got %s", details.Name)
	}
	if details.Image != "docker.io/library/nginx:latest" {
		t.Errorf("Unexpected image ref: %s", details.Image)
	}
	if details.ImageDigest != "sha256:0001112223334445556667778889990001112223334445556667778889990001" {
		t.Errorf("Unexpected image digest: %s", details.ImageDigest)
	}

	spec := details.Spec
	if spec.Name != "web" || spec.Image != "docker.io/library/nginx:latest" {
		t.Errorf("RunSpec identity mismatch: %+v", spec)
	}
	if spec.RestartPolicy != "always" {
		t.Errorf("Expected restart policy always, got %s", spec.RestartPolicy)
	}
	wantPorts := []PortMapping{{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"}}
	if !reflect.DeepEqual(spec.Ports, wantPorts) {
		t.Errorf("Unexpected ports: %+v", spec.Ports)
	}
	wantMounts := []Mount{{Source: "/srv/www", Destination: "/usr/share/nginx/html", RW: true}}
	if !reflect.DeepEqual(spec.Mounts, wantMounts) {
		t.Errorf("Unexpected mounts: %+v", spec.Mounts)
	}
	if !reflect.DeepEqual(spec.Args, []string{"nginx", "-g", "daemon off;"}) {
		t.Errorf("Unexpected args: %+v", spec.Args)
	}
}

func TestInspectContainerMapPorts(t *testing.T) {
	inspectMapPorts := `[{
		"Id": "bbb222",
		"Name": "/db",
		"Image": "sha256:0002",
		"ImageName": "docker.io/library/postgres:14",
		"Config": {"Env": [], "Labels": null},
		"HostConfig": {"RestartPolicy": {"Name": ""}},
		"Mounts": [],
		"NetworkSettings": {
			"Ports": {
				"5432/tcp": [{"HostIp": "127.0.0.1", "HostPort": "5433"}],
				"9000/udp": [{"HostIp": "", "HostPort": "9000"}]
			}
		}
	}]`

	client, _ := newFakeClient(map[string]fakeResponse{
		"inspect --format json --type container bbb222": {out: []byte(inspectMapPorts)},
	})

	details, err := client.InspectContainer(context.Background(), "bbb222")
	if err != nil {
		t.Fatalf("InspectContainer returned error: %v", err)
	}

	if details.Name != "db" {
		t.Errorf("Expected leading slash stripped from name, got %s", details.Name)
	}

	wantPorts := []PortMapping{
		{HostIP: "127.0.0.1", HostPort: 5433, ContainerPort: 5432, Protocol: "tcp"},
		{HostIP: "", HostPort: 9000, ContainerPort: 9000, Protocol: "udp"},
	}
	if !reflect.DeepEqual(details.Spec.Ports, wantPorts) {
		t.Errorf("Unexpected ports: %+v", details.Spec.Ports)
	}
}

func TestInspectContainerNoData(t *testing.T) {
	client, _ := newFakeClient(map[string]fakeResponse{
		"inspect --format json --type container gone": {out: []byte(`[]`)},
	})

	if _, err := client.InspectContainer(context.Background(), "gone"); err == nil {
		t.Fatal("Expected error for empty inspect output")
	}
}

func TestRunContainerReturnsID(t *testing.T) {
	spec := RunSpec{Name: "web", Image: "docker.io/library/nginx:latest"}

	client, runner := newFakeClient(map[string]fakeResponse{
		"run": {out: []byte("deadbeef1234\n")},
	})

	id, err := client.RunContainer(context.Background(), spec)
	if err != nil {
		t.Fatalf("RunContainer returned error: %v", err)
	}
	if id != "deadbeef1234" {
		t.Errorf("Expected trimmed container ID, got %q", id)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("Expected 1 podman invocation, got %d", len(runner.calls))
	}
	if !reflect.DeepEqual(runner.calls[0][:4], []string{"run", "-d", "--name", "web"}) {
		t.Errorf("Unexpected run argv prefix: %v", runner.calls[0])
	}
}

func TestRunContainerEmptyOutput(t *testing.T) {
	client, _ := newFakeClient(map[string]fakeResponse{
		"run": {out: []byte("  \n")},
	})

	if _, err := client.RunContainer(context.Background(), RunSpec{Name: "web", Image: "nginx"}); err == nil {
		t.Fatal("Expected error when podman run prints no ID")
	}
}

func TestStopAndRemoveContainer(t *testing.T) {
	client, runner := newFakeClient(map[string]fakeResponse{
		"stop aaa111": {out: []byte("aaa111\n")},
		"rm aaa111":   {out: []byte("aaa111\n")},
	})

	ctx := context.Background()
	if err := client.StopContainer(ctx, "aaa111"); err != nil {
		t.Fatalf("StopContainer returned error: %v", err)
	}
	if err := client.RemoveContainer(ctx, "aaa111"); err != nil {
		t.Fatalf("RemoveContainer returned error: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("Expected 2 invocations, got %d", len(runner.calls))
	}
}
