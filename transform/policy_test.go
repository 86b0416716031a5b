package transform

import (
	"context"
	"testing"
)

func TestDefaultPolicy_Eligible(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"import React from 'react';\n", true},
		{"import { Component } from \"react\";\n", true},
		{"const React = require('react');\n", true},
		{"import Preact from 'preact';\n", false},
		{"// import React from 'react-dom'\n", false},
		{"import React from 'react';\nexport type Props = {};\n", false},
		{"import React from 'react';\nconst s = 'type X = 1';\n", true},
		{"import React from 'react';\nconst el = <p>Don't type X = 1</p>;\n", true},
		{"/* import React from 'react' */\nimport Vue from 'vue';\n", false},
		{"import React from 'react';\nfunction f() {\n  type Local = number;\n}\n", false},
	}
	for _, tt := range tests {
		got, _, err := (DefaultPolicy{}).Eligible(context.Background(), []byte(tt.src))
		if err != nil {
			t.Fatalf("Eligible(%q) error = %v", tt.src, err)
		}
		if got != tt.want {
			t.Errorf("Eligible(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestDefaultPolicy_Finalize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "named specifier",
			src:  "import React, { PropTypes, Component } from 'react';\n",
			want: "/* @flow */\nimport React, { Component } from 'react';\n",
		},
		{
			name: "only specifier",
			src:  "import React from 'react';\nimport { PropTypes } from 'react';\nx();\n",
			want: "/* @flow */\nimport React from 'react';\nx();\n",
		},
		{
			name: "default with specifier",
			src:  "import React, { PropTypes } from 'react';\n",
			want: "/* @flow */\nimport React from 'react';\n",
		},
		{
			name: "still used",
			src:  "import React, { PropTypes } from 'react';\nx(PropTypes.string);\n",
			want: "/* @flow */\nimport React, { PropTypes } from 'react';\nx(PropTypes.string);\n",
		},
		{
			name: "reassigned",
			src:  "import { PropTypes } from 'react';\nconst T = PropTypes;\n",
			want: "/* @flow */\nimport { PropTypes } from 'react';\nconst T = PropTypes;\n",
		},
		{
			name: "mentioned only in a string",
			src:  "import PropTypes from 'prop-types';\nlog('PropTypes.string');\n",
			want: "/* @flow */\nlog('PropTypes.string');\n",
		},
		{
			name: "aliased specifier kept",
			src:  "import React, { PropTypes as PT } from 'react';\n",
			want: "/* @flow */\nimport React, { PropTypes as PT } from 'react';\n",
		},
		{
			name: "require",
			src:  "const React = require('react');\nconst PropTypes = require('prop-types');\nmodule.exports = 1;\n",
			want: "/* @flow */\nconst React = require('react');\nmodule.exports = 1;\n",
		},
		{
			name: "shorthand use",
			src:  "import PropTypes from 'prop-types';\nexport default { PropTypes };\n",
			want: "/* @flow */\nimport PropTypes from 'prop-types';\nexport default { PropTypes };\n",
		},
		{
			name: "existing block pragma",
			src:  "/**\n * @flow\n */\nimport React from 'react';\n",
			want: "/**\n * @flow\n */\nimport React from 'react';\n",
		},
		{
			name: "pragma after license",
			src:  "// Copyright\n// @flow strict\nimport React from 'react';\n",
			want: "// Copyright\n// @flow strict\nimport React from 'react';\n",
		},
		{
			name: "pragma not in header",
			src:  "import React from 'react';\n// @flow\n",
			want: "/* @flow */\nimport React from 'react';\n// @flow\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (DefaultPolicy{}).Finalize(context.Background(), []byte(tt.src))
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Finalize() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
