package llm

// ArgumentDeveloperTask is the system prompt for the argument model. It asks
// for a three-ply argument (plaintiff, defendant counterargument, rebuttal)
// over the scenario's factors, ending in a fenced JSON block.
const ArgumentDeveloperTask = `
TASK
In this task, we will formulate legal arguments based on trade secret misappropriation claims using a structured approach. Follow the steps outlined below for consistency and clarity.

Legal Problem Context

In this problem, we aim to develop arguments using factors critical to trade secret misappropriation claims. Typically, the Plaintiff alleges that the Defendant has misappropriated their trade secret. For instance, Kentucky Fried Chicken (KFC) could claim misappropriation if an employee disclosed their secret recipe, which is a blend of herbs and spices, by publishing it in a cookbook.

Factors may support either the Plaintiff (P) or the Defendant (D). The Plaintiff might emphasize measures they took to protect the recipe, while the Defendant could argue that the recipe was already disclosed to outsiders. Based on the factors provided, construct a three-part argument as detailed below.

Instructions

    1.  If there is no common factor between the input case and the TSC1/TSC2, you need to say "No common factor between the input case and the TSC1/TSC2" and stop generating any argument.
    2.	Construct a 3-Ply Argument:
	i.	Plaintiff's Argument: Present an argument in favor of the Plaintiff's position by:
	•	Citing a relevant Trade Secret Case (TSC1/TSC2) with a similar favorable outcome.
	•	Highlighting shared factors between the input case and the TSC1/TSC2.
	ii.	Defendant's Counterargument: Refute the Plaintiff's position by:
	•	Distinguishing the cited TSC1/TSC2 based on differing factors.
	•	Citing a counterexample (a TSC1/TSC2 with a Defendant-favorable outcome) and drawing an analogy to the input case.
	iii.	Rebuttal by Plaintiff: Address and distinguish the counterexample, reinforcing the Plaintiff's original argument.
	3.	Use Provided Factors: Base your arguments on the factors outlined, ensuring logical consistency.

 
Example Input Case
    F1 Disclosure-in-negotiations (D)
	F4 Agreed-not-to-disclose (P)
	F6 Security-measures (P)
	F10 Secrets-disclosed-outsiders (D)
	F12 Outsider-disclosures-restricted (P)
	F14 Restricted-materials-used (P)
	F21 Knew-info-confidential (P)

Example TSC1
	outcome Plaintiff
	F4 Agreed-not-to-disclose (P)
	F6 Security-measures (P)
	F7 Brought-tools (P)
	F8 Competitive-advantage (P)
	F18 Identical-products (P)

Example TSC2
	outcome Defendant
	F3 Employee-sole-developer (D)
	F4 Agreed-not-to-disclose (P)
	F5 Agreement-not-specific (D)
	F6 Security-measures (P)
	F21 Knew-info-confidential (P)

Output Format:

` +
	"```" +
	`json
{
    {
      "Plaintiff's Argument": {
        "Factors F4 Agreed-not-to-disclose (P) and F6 Security-measures (P) were present in both the input case and TSC1, where the court found in favor of the Plaintiff. In Addition, Factors F12 Outsider-disclosures-restricted (P), F14 Restricted-materials-used (P), F21 Knew-info-confidential (P) are present in the input case and favor the Plaintiff."
      }
    },
    {
    "Defendant's Counterargument": {
        "TSC1, cited by the plaintiff is distinguishable because factors F7 Brought-tools (P), F8 Competitive-advantage (P), and F18 Identical-products (P) were also present, but are not present in the input case. In addition, F1 Disclosure-in-negotiations (D) and F10 Secrets-disclosed-outsiders (D) are pro-defendant strengths present in the input case but not in TSC1. TSC2 is a counterexample to TSC1. In TSC2, F4 Agreed-not-to-disclose (P), F6 Security-measures (P), and F21 Knew-info-confidential (P) were present in both the input case and TSC2 and the court found in favor of the Defendant."
      }
    },
    {
      "Plaintiff's Rebuttal": {
        "TSC2, cited by the Defendant is distinguishable. In TSC2, the additional factors F5 Agreement-not-specific (D) and F3 Employee-sole-developer (D) were present and are not present in input case. Also, F12 Outsider-disclosures-restricted (P) and F14 Restricted-materials-used (P) are present in the input case but not in TSC2."
      }
    }
}
` +
	"```" +
	`
`

// FactorDistillerTask is the system prompt for the distiller model. It asks
// for the factors the argument attributes to the input case and each TSC,
// keyed "Input Case", "TSC1" and "TSC2".
const FactorDistillerTask = `
TASK
You are tasked with extracting factors from the argument.

Example Input:

{
    {
      "Plaintiff's Argument": {
        "Factors F4 Agreed-not-to-disclose (P) and F6 Security-measures (P) were present in both the input case and TSC1, where the court found in favor of the Plaintiff. In Addition, Factors F12 Outsider-disclosures-restricted (P), F14 Restricted-materials-used (P), F21 Knew-info-confidential (P) are present in the input case and favor the Plaintiff."
      }
    },
    {
      "Defendant's Counterargument": {
        "TSC1, cited by the plaintiff is distinguishable because factors F7 Brought-tools (P), F8 Competitive-advantage (P), and F18 Identical-products (P) were also present, but are not present in the input case. In addition, F1 Disclosure-in-negotiations (D) and F10 Secrets-disclosed-outsiders (D) are pro-defendant strengths present in the input case but not in TSC1. TSC2 is a counterexample to TSC1. In TSC2, F4 Agreed-not-to-disclose (P), F6 Security-measures (P), and F21 Knew-info-confidential (P) were present in both the input case and TSC2 and the court found in favor of the Defendant."
      }
    },
    {
      "Plaintiff's Rebuttal": {
        "TSC2, cited by the Defendant is distinguishable. In TSC2, the additional factors F5 Agreement-not-specific (D) and F3 Employee-sole-developer (D) were present and are not present in input case. Also, F12 Outsider-disclosures-restricted (P) and F14 Restricted-materials-used (P) are present in the input case but not in TSC2."
      }
    }
}

Example Output:
{
  "Input Case": {
    "F1 Disclosure-in-negotiations (D)",
	"F4 Agreed-not-to-disclose (P)",
	"F6 Security-measures (P)",
	"F10 Secrets-disclosed-outsiders (D)",
	"F12 Outsider-disclosures-restricted (P)",
	"F14 Restricted-materials-used (P)",
	"F21 Knew-info-confidential (P)"
  },
  "TSC1": {
    "F4 Agreed-not-to-disclose (P)",
    "F6 Security-measures (P)",
    "F7 Brought-tools (P)",
    "F8 Competitive-advantage (P)",
    "F18 Identical-products (P)"
  },
  "TSC2": {
    "F3 Employee-sole-developer (D)",
    "F4 Agreed-not-to-disclose (P)",
    "F5 Agreement-not-specific (D)",
    "F6 Security-measures (P)",
    "F21 Knew-info-confidential (P)"
  }
}
`

// NoCommonFactorAnswer is the refusal the argument model is told to give when
// the input case shares nothing with either TSC
const NoCommonFactorAnswer = "No common factor between the input case and the TSC1/TSC2"
