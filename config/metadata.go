package config

import (
	"encoding/json"
	"io"
	"net/http"
)

type AuthServerMetadata struct {
	Issuer                             string   `json:"issuer" yaml:"issuer"`
	AuthorizationEndpoint              string   `json:"authorization_endpoint" yaml:"authorization_endpoint"`
	TokenEndpoint                      string   `json:"token_endpoint" yaml:"token_endpoint"`
	UserinfoEndpoint                   *string  `json:"userinfo_endpoint" yaml:"userinfo_endpoint"`
	JwksUri                            string   `json:"jwks_uri" yaml:"jwks_uri"`
	ResponseTypesSupported             []string `json:"response_types_supported" yaml:"response_types_supported"`
	ResponseModesSupported             []string `json:"response_modes_supported" yaml:"response_modes_supported"`
	GrantTypesSupported                []string `json:"grant_types_supported" yaml:"grant_types_supported"`
	SubjectTypesSupported              []string `json:"subject_types_supported" yaml:"subject_types_supported"`
	ScopesSupported                    []string `json:"scopes_supported" yaml:"scopes_supported"`
	TokenEndpointAuthMessagesSupported []string `json:"token_endpoint_auth_methods_supported" yaml:"token_endpoint_auth_methods_supported"`
	ClaimsSupported                    []string `json:"claims_supported" yaml:"claims_supported"`
	RevocationEndpoint                 string   `json:"revocation_endpoint" yaml:"revocation_endpoint"`
	EndSessionEndpoint                 string   `json:"end_session_endpoint" yaml:"end_session_endpoint"`
}

// NewFromMetadataUrl fetches the authorization server metadata from the supplied metadata/well-known url
func NewFromMetadataUrl(url string) (*AuthServerMetadata, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	metadata := &AuthServerMetadata{}
	err = json.Unmarshal(body, metadata)
	if err != nil {
		return nil, err
	}

	return metadata, nil
}
