// Package config 애플리케이션 설정을 로드하고 검증합니다.
//
// 설정은 다음 순서로 병합되며, 뒤에 로드된 값이 앞의 값을 덮어씁니다.
//
//  1. 기본값 (newDefaultConfig)
//  2. .env 파일의 로그인 정보 (LOG, PWD)
//  3. JSON 설정 파일 (biomac-scraper.json)
//  4. BIOMAC_ 접두사를 가진 환경 변수
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 이름
	AppName string = "biomac-scraper"

	// DefaultFilename 기본 설정 파일 이름
	DefaultFilename = AppName + ".json"

	// DefaultEnvFilename 로그인 정보를 담는 .env 파일 이름
	DefaultEnvFilename = ".env"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사
	EnvPrefix = "BIOMAC_"
)

// .env 파일의 키와 설정 경로의 대응 관계
var dotEnvKeys = map[string]string{
	"LOG": "credentials.username",
	"PWD": "credentials.password",
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 설정 파일과 같은 디렉터리에 .env 파일이 있으면 로그인 정보를 함께 읽습니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. .env 파일의 로그인 정보
	//
	// godotenv.Load는 프로세스 환경 변수를 변경하며, 쉘이 이미 설정한 PWD(현재 디렉터리)와
	// 충돌하므로 Read로 파일 내용만 읽습니다.
	dotEnv, err := readDotEnv(filepath.Join(filepath.Dir(filename), DefaultEnvFilename))
	if err != nil {
		return nil, err
	}
	if len(dotEnv) > 0 {
		if err := k.Load(confmap.Provider(dotEnv, "."), nil); err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, ".env 로그인 정보 병합에 실패했습니다")
		}
	}

	// 3. JSON 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 4. 환경 변수 로드 (최우선 순위)
	// 예: BIOMAC_HTTP_RETRY__MAX_RETRIES -> http_retry.max_retries
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 5. 구조체 언마샬링 (정의되지 않은 필드는 오류)
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 6. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 설정 키 경로로 변환합니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// readDotEnv .env 파일에서 로그인 정보만 골라 설정 키 경로로 변환합니다.
// 파일이 없으면 빈 맵을 반환합니다.
func readDotEnv(path string) (map[string]any, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf(".env 파일을 읽을 수 없습니다: '%s'", path))
	}

	out := make(map[string]any, len(dotEnvKeys))
	for envKey, key := range dotEnvKeys {
		if v, ok := values[envKey]; ok && strings.TrimSpace(v) != "" {
			out[key] = v
		}
	}
	return out, nil
}
