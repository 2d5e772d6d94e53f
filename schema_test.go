package ldap

import "testing"

func TestSubschemaSubentry(t *testing.T) {
	var schema SubschemaSubentry

	for idx, raw := range testSchemaDefinitions {
		def, err := parseAttributeTypeDescription(raw)
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
			return
		}
		schema.Push(def)
	}

	for idx, raw := range testSchemaObjectClasses {
		def, err := parseObjectClassDescription(raw)
		if err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
			return
		}
		schema.ObjectClasses = append(schema.ObjectClasses, def)
	}

	if err := schema.AddLDAPSyntax(`( 1.3.6.1.4.1.1466.115.121.1.27 DESC 'INTEGER' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
		return
	}

	counters := schema.Counters()
	if counters[0] != 1 {
		t.Errorf("%s failed: want 1 ldapSyntax, got %d", t.Name(), counters[0])
	}
	if counters[2] != len(testSchemaDefinitions) {
		t.Errorf("%s failed: want %d attributeTypes, got %d", t.Name(), len(testSchemaDefinitions), counters[2])
	}
	if counters[8] != counters[0]+counters[2]+counters[4] {
		t.Errorf("%s failed: total counter mismatch", t.Name())
	}

	_ = schema.OID()
	_ = schema.String()
	_ = schema.LDAPSyntaxes.OID()
	_ = schema.MatchingRules.OID()
	_ = schema.AttributeTypes.OID()
	_ = schema.MatchingRuleUse.OID()
	_ = schema.ObjectClasses.OID()
	_ = schema.DITContentRules.OID()
	_ = schema.NameForms.OID()
	_ = schema.DITStructureRules.OID()

	if idx := schema.ObjectClasses.Contains(`top`); idx == -1 {
		t.Errorf("%s failed: expected to find 'top' object class", t.Name())
	}
}

func TestSubschemaSubentry_codecov(t *testing.T) {
	stringBooleanClause(`test`, true)
	stringBooleanClause(`test`, false)

	var mru MatchingRuleUse
	mru = append(mru, MatchingRuleUseDescription{
		OID:         `2.5.13.15`,
		Description: `this is text`,
		Name:        []string{`userRule`},
		Applies:     []string{`cn`, `sn`},
	})
	_ = mru.String()

	var atd AttributeTypeDescription
	atd.Single = true
	atd.mutexBooleanString()
	atd.handleBoolean(`COLLECTIVE`)
	_ = atd.String()

	atd.Single = false
	atd.mutexBooleanString()
	atd.handleBoolean(`COLLECTIVE`)
	atd.handleBoolean(`SINGLE-VALUE`)
	_ = atd.String()
	atd.mutexBooleanString()

	_ = stringExtensions(map[int]Extension{
		1: {XString: `X-STRING1`, Values: []string{`VALUE1`}},
		3: {XString: `X-STRING2`, Values: []string{`VALUE1`}},
	})

	tkz := newSchemaTokenizer(`(1.2.3.4 NAME 'fake')`)
	tkz.pos = 1000
	tkz.next()

	_ = parseClassKind(`0`)
	_ = parseClassKind(`1`)
	_ = parseClassKind(`2`)
	_ = parseClassKind(`3`)
	_ = stringClassKind(0)
	_ = stringClassKind(1)
	_ = stringClassKind(2)
	_ = stringClassKind(3)

	if _, err := parseLDAPSyntaxDescription(`( 1.2.3.4
		DESC 'info'
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseMatchingRuleDescription(`( 1.2.3.4
		NAME 'matchingrule'
		DESC 'info'
		OBSOLETE
		SYNTAX 1.2.3.4
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseAttributeTypeDescription(`( 1.2.3.4
		NAME 'attribute'
		DESC 'info'
		OBSOLETE
		SYNTAX 1.2.3.4
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseObjectClassDescription(`( 1.2.3.4
		NAME 'class'
		DESC 'info'
		OBSOLETE
		SUP top
		STRUCTURAL
		MUST c
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseDITContentRuleDescription(`( 1.2.3.4
		NAME 'crule'
		DESC 'info'
		OBSOLETE
		AUX auxClass
		MUST cn
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseNameFormDescription(`( 1.2.3.4
		NAME 'form'
		DESC 'info'
		OBSOLETE
		OC structuralClass
		MUST cn
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	if _, err := parseDITStructureRuleDescription(`( 1
		NAME 'srule'
		DESC 'info'
		OBSOLETE
		FORM form
		X-ORIGIN 'BOGUS' )`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
}

var testSchemaDefinitions []string = []string{
	`( 2.5.4.0
	        NAME 'objectClass'
	        EQUALITY objectIdentifierMatch
	        SYNTAX 1.3.6.1.4.1.1466.115.121.1.38
	        X-ORIGIN 'RFC4512' )`,
	`( 2.5.4.41
	        NAME 'name'
	        EQUALITY caseIgnoreMatch
	        SUBSTR caseIgnoreSubstringsMatch
	        SYNTAX 1.3.6.1.4.1.1466.115.121.1.15
	        X-ORIGIN 'RFC4519' )`,
	`( 2.5.4.3
	        NAME ( 'cn' 'commonName' )
	        DESC 'RFC4519: common name(s) for which the entity is known by'
	        SUP name
	        SYNTAX 1.3.6.1.4.1.1466.115.121.1.15
	        X-ORIGIN 'RFC4519' )`,
	`( 2.5.4.13
                NAME 'description'
                EQUALITY caseIgnoreMatch
                SUBSTR caseIgnoreSubstringsMatch
                SYNTAX 1.3.6.1.4.1.1466.115.121.1.15
                X-ORIGIN 'RFC4519' )`,
}

var testSchemaObjectClasses []string = []string{
	`( 2.5.6.0
	        NAME 'top'
	        ABSTRACT
	        MUST objectClass
	        X-ORIGIN 'RFC4512' )`,
	`( 2.5.6.11
	        NAME 'applicationProcess'
	        SUP top
	        STRUCTURAL
	        MUST cn
	        MAY ( description
	            $ l
	            $ ou
	            $ seeAlso )
	        X-ORIGIN 'RFC4519' )`,
}
