package util

import (
	"encoding/json"
	"fmt"
)

// VcapServices is a parsed VCAP_SERVICES JSON configuration, as bound by
// Cloud Foundry-style platforms
type VcapServices map[string][]VcapService

// VcapService is one bound service instance; only the fields the broker
// needs are parsed
type VcapService struct {
	Name        string          `json:"name"`
	Credentials VcapCredentials `json:"credentials"`
}

// VcapCredentials is a parsed map of credentials for a bound service
type VcapCredentials map[string]interface{}

// ParseVcapServices parses raw VCAP_SERVICES JSON into a useable object
func ParseVcapServices(data []byte) (*VcapServices, error) {
	services := VcapServices{}
	err := json.Unmarshal(data, &services)
	return &services, err
}

// FindServiceByName finds a service within VCAP_SERVICES regardless of
// which service type it is nestled under
func (s VcapServices) FindServiceByName(name string) *VcapService {
	for _, serviceArray := range s {
		for _, service := range serviceArray {
			if service.Name == name {
				return &service
			}
		}
	}
	return nil
}

// GetServiceNames returns the names of all bound services, for error messages
func (s VcapServices) GetServiceNames() []string {
	names := []string{}
	for _, serviceArray := range s {
		for _, service := range serviceArray {
			names = append(names, service.Name)
		}
	}
	return names
}

// String recovers the value at the given key, assuming it is a string
func (c VcapCredentials) String(key string) (string, error) {
	val, ok := c[key]
	if !ok {
		return "", fmt.Errorf("Credential key does not exist: %s", key)
	}
	valStr, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("Could not convert value to string: key=%s, value=%v", key, val)
	}
	return valStr, nil
}
