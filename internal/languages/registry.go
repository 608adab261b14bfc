// Package languages 维护语言配置表。
// 计数核心只依赖 Profile 中的后缀和注释/字符串标记，新增语言只需要新增表项。
package languages

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Registry 管理语言名称到 Profile 的映射。
// 构建完成后只读，可在多个 goroutine 间共享。
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry 创建注册中心并载入全部内置语言。
func NewRegistry() *Registry {
	registry := &Registry{profiles: make(map[string]Profile)}
	for _, profile := range builtinProfiles() {
		registry.profiles[profile.Name] = profile
	}
	return registry
}

// normalizeName 统一语言名称的大小写与空白。
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup 按语言名称查找可用于计数的 Profile。
// 语言不存在或缺少必要标记时返回 *ConfigError。
func (r *Registry) Lookup(name string) (Profile, error) {
	key := normalizeName(name)
	profile, ok := r.profiles[key]
	if !ok {
		return Profile{}, &ConfigError{Language: name, Err: ErrUnknownLanguage}
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile.clone(), nil
}

// Register 新增或覆盖一种语言。
func (r *Registry) Register(profile Profile) error {
	profile.Name = normalizeName(profile.Name)
	if profile.Name == "" {
		return fmt.Errorf("register language: empty name")
	}
	if len(profile.Extensions) == 0 {
		return &ConfigError{Language: profile.Name, Err: ErrMissingExtensions}
	}
	r.profiles[profile.Name] = profile.clone()
	return nil
}

// LoadFile 从 JSON 文件读取语言配置数组并合并到注册中心。
//
// 文件格式示例：
//
//	[{"name": "lua", "extensions": [".lua"], "line_comment": "--", "string_delimiter": "\""}]
func (r *Registry) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(content, &profiles); err != nil {
		return fmt.Errorf("decode profiles file %s: %w", path, err)
	}

	for _, profile := range profiles {
		if err := r.Register(profile); err != nil {
			return fmt.Errorf("load profiles file %s: %w", path, err)
		}
	}
	return nil
}

// Languages 返回按名称排序的全部语言，包括缺少标记、无法用于计数的语言。
func (r *Registry) Languages() []Profile {
	result := make([]Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		result = append(result, profile.clone())
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
