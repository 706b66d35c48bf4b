package config

// mergeConfigs layers override on top of base. Scalars and lists in
// override win when set; extension maps are merged one level deep.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	if override.State != nil {
		merged := StateConfig{}
		if base.State != nil {
			merged = *base.State
		}
		if override.State.Path != "" {
			merged.Path = override.State.Path
		}
		result.State = &merged
	}

	if override.Notifications != nil {
		merged := NotificationsConfig{}
		if base.Notifications != nil {
			merged = *base.Notifications
		}
		if override.Notifications.Command != nil {
			merged.Command = append([]string(nil), override.Notifications.Command...)
		}
		if override.Notifications.Timeout != "" {
			merged.Timeout = override.Notifications.Timeout
		}
		result.Notifications = &merged
	}

	if override.TUI != nil {
		merged := TUIConfig{}
		if base.TUI != nil {
			merged = *base.TUI
		}
		if override.TUI.Theme != "" {
			merged.Theme = override.TUI.Theme
		}
		if override.TUI.FrameRate != 0 {
			merged.FrameRate = override.TUI.FrameRate
		}
		result.TUI = &merged
	}

	if override.Extensions != nil {
		extensions := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for key, value := range base.Extensions {
			extensions[key] = value
		}
		for key, value := range override.Extensions {
			baseMap, baseOk := extensions[key].(map[string]interface{})
			overrideMap, overrideOk := value.(map[string]interface{})
			if baseOk && overrideOk {
				mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
				for k, v := range baseMap {
					mergedMap[k] = v
				}
				for k, v := range overrideMap {
					mergedMap[k] = v
				}
				extensions[key] = mergedMap
				continue
			}
			extensions[key] = value
		}
		result.Extensions = extensions
	}

	return &result
}
