// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// 링커 플래그(-ldflags "-X ...")로 주입됩니다.
//
//	go build -ldflags "-X github.com/darkkaiser/biomac-scraper/internal/pkg/version.appVersion=v1.2.0"
var (
	appVersion    = ""
	gitCommitHash = ""
	buildDate     = ""
)

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

// Info 애플리케이션의 빌드 정보입니다.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DirtyBuild bool   `json:"dirty_build"`
}

var (
	once   sync.Once
	cached Info
)

// Get 빌드 정보를 반환합니다. 최초 호출 시 한 번만 계산됩니다.
func Get() Info {
	once.Do(func() {
		cached = collect(Info{
			Version:   strings.TrimSpace(appVersion),
			Commit:    strings.TrimSpace(gitCommitHash),
			BuildDate: strings.TrimSpace(buildDate),
		})
	})
	return cached
}

// collect 주입되지 않은 값을 런타임 정보와 모듈 VCS 메타데이터로 채웁니다.
func collect(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				bi.DirtyBuild = s.Value == "true"
			}
		}
		if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// ToMap 구조적 로깅용 필드를 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":     i.Version,
		"commit":      i.Commit,
		"build_date":  i.BuildDate,
		"go_version":  i.GoVersion,
		"os":          i.OS,
		"arch":        i.Arch,
		"dirty_build": i.DirtyBuild,
	}
}

// String 예: "v1.2.0+dirty (commit: f25b8bf, go1.24.0, linux/amd64)"
func (i Info) String() string {
	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	details := make([]string, 0, 3)
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	details = append(details, i.GoVersion, fmt.Sprintf("%s/%s", i.OS, i.Arch))

	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
