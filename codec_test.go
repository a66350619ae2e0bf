package ackspec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type driverConfig struct {
	Database     string  `yaml:"database" json:"database"`
	WriteConcern AckSpec `yaml:"writeConcern" json:"writeConcern"`
}

func (suite *UnitTestSuite) TestTextCodec() {
	text, err := W2.MarshalText()
	suite.Require().NoError(err)
	suite.Assert().Equal("w2", string(text))

	text, err = Unset().MarshalText()
	suite.Require().NoError(err)
	suite.Assert().Equal("acknowledged", string(text))

	_, err = suite.mustMake(WCount(9), 0, false, false).MarshalText()
	suite.Assert().ErrorIs(err, ErrInvalidArgument)

	var spec AckSpec
	suite.Require().NoError(spec.UnmarshalText([]byte("Journal_Safe")))
	suite.Assert().Equal(Journaled, spec)

	err = spec.UnmarshalText([]byte("eventually"))
	suite.Assert().ErrorIs(err, ErrUnknownName)
	suite.Assert().Equal(Journaled, spec)
}

func (suite *UnitTestSuite) TestJSONCodec() {
	spec := suite.mustMake(WCount(1), 5000, false, true)

	b, err := json.Marshal(driverConfig{Database: "app", WriteConcern: spec})
	suite.Require().NoError(err)
	suite.Assert().Equal(`{"database":"app","writeConcern":{"w":1,"wtimeout":5000,"j":true}}`, string(b))

	var cfg driverConfig
	suite.Require().NoError(json.Unmarshal(b, &cfg))
	suite.Assert().Equal(spec, cfg.WriteConcern)

	b, err = json.Marshal(driverConfig{WriteConcern: Unset()})
	suite.Require().NoError(err)
	suite.Assert().Equal(`{"database":"","writeConcern":{}}`, string(b))

	suite.Require().NoError(json.Unmarshal([]byte(`{"writeConcern":"MAJORITY"}`), &cfg))
	suite.Assert().Equal(MajorityAck, cfg.WriteConcern)

	suite.Require().NoError(json.Unmarshal([]byte(`{"writeConcern":{"w":"dc-east","fsync":true}}`), &cfg))
	suite.Assert().Equal(suite.mustMake(WLabel("dc-east"), 0, true, false), cfg.WriteConcern)
}

func (suite *UnitTestSuite) TestJSONCodecErrors() {
	testCases := map[string]string{
		"unknown name":    `{"writeConcern":"eventually"}`,
		"unknown field":   `{"writeConcern":{"w":1,"wtimeoutMS":10}}`,
		"float w":         `{"writeConcern":{"w":1.5}}`,
		"unset with j":    `{"writeConcern":{"j":true}}`,
		"negative count":  `{"writeConcern":{"w":-1}}`,
		"array concern":   `{"writeConcern":[1]}`,
		"string wtimeout": `{"writeConcern":{"w":1,"wtimeout":"5"}}`,
	}

	for name, data := range testCases {
		suite.Run(name, func() {
			var cfg driverConfig
			suite.Assert().Error(json.Unmarshal([]byte(data), &cfg))
		})
	}
}

func (suite *UnitTestSuite) TestYAMLCodecNamed() {
	b, err := yaml.Marshal(driverConfig{Database: "app", WriteConcern: MajorityAck})
	suite.Require().NoError(err)
	suite.Assert().Equal("database: app\nwriteConcern: majority\n", string(b))

	var cfg driverConfig
	suite.Require().NoError(yaml.Unmarshal([]byte("database: app\nwriteConcern: REPLICA_ACKNOWLEDGED\n"), &cfg))
	suite.Assert().Equal("app", cfg.Database)
	suite.Assert().Equal(W2, cfg.WriteConcern)
}

func (suite *UnitTestSuite) TestYAMLCodecMapping() {
	specs := []AckSpec{
		suite.mustMake(WCount(1), 5000, false, true),
		suite.mustMake(WLabel("majority"), 250, true, false),
		suite.mustMake(WLabel("2"), 0, false, false),
		suite.mustMake(WCount(4), 0, false, false),
	}

	for _, spec := range specs {
		b, err := yaml.Marshal(driverConfig{WriteConcern: spec})
		suite.Require().NoError(err)

		var cfg driverConfig
		suite.Require().NoError(yaml.Unmarshal(b, &cfg), string(b))
		suite.Assert().Equal(spec, cfg.WriteConcern, string(b))
	}

	var cfg driverConfig
	doc := "writeConcern:\n  w: majority\n  wtimeout: 1000\n  j: true\n"
	suite.Require().NoError(yaml.Unmarshal([]byte(doc), &cfg))
	suite.Assert().Equal(suite.mustMake(WLabel("majority"), 1000, false, true), cfg.WriteConcern)
}

func (suite *UnitTestSuite) TestYAMLCodecErrors() {
	testCases := map[string]string{
		"unknown name":  "writeConcern: eventually\n",
		"unknown field": "writeConcern:\n  w: 1\n  timeout: 10\n",
		"sequence":      "writeConcern: [1, 2]\n",
		"float w":       "writeConcern:\n  w: 1.5\n",
		"unset with j":  "writeConcern:\n  j: true\n",
		"string fsync":  "writeConcern:\n  w: 1\n  fsync: \"yes\"\n",
	}

	for name, data := range testCases {
		suite.Run(name, func() {
			var cfg driverConfig
			suite.Assert().Error(yaml.Unmarshal([]byte(data), &cfg))
		})
	}
}
