// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package models

type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type Version struct {
	Capabilities []string `json:"capabilities"`
	Links        []*Link  `json:"links"`
	Updated      string   `json:"updated"`
	Version      string   `json:"version"`
}
