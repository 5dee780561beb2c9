package tsbuild

// AncestorInputTables is the minimal input contract this module needs
// from its upstream collaborators (the ancestor builder and the
// Li-Stephens matcher): a site table. The ancestor store itself — the
// static, per-site segment encoding of ancestral haplotypes consumed by
// the matcher — is entirely external; this module only needs to know how
// many sites exist (Dump writes each site's index as its position).
type AncestorInputTables struct {
	// Sites is one entry per candidate site. Per spec §6, NumSites
	// counts the entries whose Alleles list is empty ("null" in the
	// upstream table encoding): those are the sites this builder's
	// output actually covers, since a site with a concrete allele list
	// already supplied by the matcher is not one this incremental
	// genealogy is responsible for.
	Sites []SiteInput
}

// SiteInput is one row of the upstream site table.
type SiteInput struct {
	Position float64
	Alleles  []string
}

// numSites implements the spec §6 rule: "num_sites = count of alleles[i]
// == null in the site table".
func numSites(input *AncestorInputTables) int {
	if input == nil {
		return 0
	}
	n := 0
	for _, s := range input.Sites {
		if len(s.Alleles) == 0 {
			n++
		}
	}
	return n
}
