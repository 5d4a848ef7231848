package common

// DefaultCipherName is used when no source column supplies a cipher name.
const DefaultCipherName = "--"

// SettingsKeyPrefix prefixes the per-user settings key in the metadata store.
const SettingsKeyPrefix = "settings_"
