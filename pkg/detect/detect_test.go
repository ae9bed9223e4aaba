// SPDX-License-Identifier: AGPL-3.0-or-later

package detect_test

import (
	"errors"
	"testing"

	"routeforge/pkg/detect"
)

func TestDetect_NginxConfByExtension(t *testing.T) {
	f, err := detect.Detect("site.conf", []byte("server { listen 80; }"))
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if f != detect.FormatNginxConf {
		t.Errorf("Detect() = %q, want %q", f, detect.FormatNginxConf)
	}
}

func TestDetect_DockerComposeYAML(t *testing.T) {
	data := []byte("services:\n  web:\n    labels:\n      - traefik.enable=true\n")
	f, err := detect.Detect("docker-compose.yml", data)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if f != detect.FormatDockerCompose {
		t.Errorf("Detect() = %q, want %q", f, detect.FormatDockerCompose)
	}
}

func TestDetect_TraefikDynamicYAML(t *testing.T) {
	data := []byte("http:\n  routers:\n    r1:\n      rule: Host(`a.com`)\n")
	f, err := detect.Detect("dynamic.yml", data)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if f != detect.FormatTraefikDynamic {
		t.Errorf("Detect() = %q, want %q", f, detect.FormatTraefikDynamic)
	}
}

func TestDetect_TraefikDynamicJSON(t *testing.T) {
	data := []byte(`{"http": {"routers": {}}}`)
	f, err := detect.Detect("dynamic.json", data)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if f != detect.FormatTraefikDynamic {
		t.Errorf("Detect() = %q, want %q", f, detect.FormatTraefikDynamic)
	}
}

func TestDetect_PlainJSON(t *testing.T) {
	data := []byte(`{"foo": "bar"}`)
	f, err := detect.Detect("plain.json", data)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if f != detect.FormatJSON {
		t.Errorf("Detect() = %q, want %q", f, detect.FormatJSON)
	}
}

func TestDetect_AmbiguousExtension(t *testing.T) {
	_, err := detect.Detect("mystery.txt", []byte("anything"))
	if !errors.Is(err, detect.ErrAmbiguousFormat) {
		t.Fatalf("Detect() error = %v, want ErrAmbiguousFormat", err)
	}
}

func TestDetect_AmbiguousYAML(t *testing.T) {
	_, err := detect.Detect("unclear.yml", []byte("foo: bar\n"))
	if !errors.Is(err, detect.ErrAmbiguousFormat) {
		t.Fatalf("Detect() error = %v, want ErrAmbiguousFormat", err)
	}
}
